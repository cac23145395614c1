package outline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dgallion1/pdfoutline/internal/fontstat"
	"github.com/dgallion1/pdfoutline/internal/render"
)

// Extractor turns a PDF file into an outline document. It owns no
// per-document state, so one Extractor is safe to share across
// concurrently processed documents.
type Extractor struct {
	cfg Config
	log *slog.Logger
}

// NewExtractor builds an Extractor with the given detector settings.
func NewExtractor(cfg Config, log *slog.Logger) *Extractor {
	if cfg.Patterns == nil {
		cfg.Patterns = DefaultConfig().Patterns
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = DefaultConfig().MinScore
	}
	if cfg.MaxPerPage <= 0 {
		cfg.MaxPerPage = DefaultConfig().MaxPerPage
	}
	return &Extractor{cfg: cfg, log: log}
}

// ExtractFile extracts the outline of one PDF. The PDF library can
// panic on malformed input, so the whole pass runs behind a recover
// and degrades to an error at the document boundary.
func (e *Extractor) ExtractFile(path string) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = Empty()
			err = fmt.Errorf("extract %s: panic: %v", filepath.Base(path), r)
		}
	}()

	lines, meta, err := render.ExtractLines(path, e.log)
	if err != nil {
		return Empty(), fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}

	prof := fontstat.Analyze(lines)
	entries := Detect(lines, prof, e.cfg)
	if entries == nil {
		entries = []Entry{}
	}

	return Document{
		Title:   SelectTitle(meta.Title, lines, e.cfg.Patterns),
		Outline: entries,
	}, nil
}
