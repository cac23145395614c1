// Package pipeline runs the batch pass: every PDF in the input
// directory is processed independently by a worker pool and produces
// one JSON outline file, failures included.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/outline"
	"github.com/dgallion1/pdfoutline/internal/render"
)

// Extractor produces an outline document for a single PDF file.
type Extractor interface {
	ExtractFile(path string) (outline.Document, error)
}

// Result records the outcome for one input file.
type Result struct {
	File     string
	Headings int
	Err      error
	Duration time.Duration
}

// Runner processes every PDF in the input directory.
type Runner struct {
	cfg config.Config
	ext Extractor
	log *slog.Logger
}

func NewRunner(cfg config.Config, ext Extractor, log *slog.Logger) *Runner {
	return &Runner{cfg: cfg, ext: ext, log: log}
}

// Run processes all PDFs with cfg.WorkerCount parallel workers.
// Documents share no state, so they are processed independently; a
// per-document failure degrades to an empty outline file and never
// aborts the batch. Results come back sorted by file name.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	files, err := listPDFs(r.cfg.InputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		r.log.Info("no pdf files found", "dir", r.cfg.InputDir)
		return nil, nil
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	r.log.Info("processing batch", "files", len(files), "workers", r.cfg.WorkerCount)

	sem := make(chan struct{}, r.cfg.WorkerCount)
	resCh := make(chan Result, len(files))
	submitted := 0
	for _, path := range files {
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			submitted++
			go func(path string) {
				defer func() { <-sem }()
				resCh <- r.processOne(path)
			}(path)
			continue
		}
		break
	}

	results := make([]Result, 0, submitted)
	for i := 0; i < submitted; i++ {
		results = append(results, <-resCh)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// processOne extracts one document and writes its JSON output. The
// output file is written even when extraction fails, so downstream
// consumers always find valid JSON for every input.
func (r *Runner) processOne(path string) Result {
	start := time.Now()
	log := r.log.With("file", filepath.Base(path))

	if pre, err := render.Preflight(path); err != nil {
		log.Warn("preflight failed", "error", err)
	} else {
		log.Info("processing", "pages", pre.PageCount, "has_images", pre.HasImages)
	}

	doc, err := r.ext.ExtractFile(path)
	if err != nil {
		log.Error("extraction failed", "error", err)
		doc = outline.Empty()
	}

	outPath := filepath.Join(r.cfg.OutputDir, outputName(path))
	if werr := writeJSON(outPath, doc); werr != nil {
		log.Error("write failed", "path", outPath, "error", werr)
		if err == nil {
			err = werr
		}
	}

	res := Result{
		File:     filepath.Base(path),
		Headings: len(doc.Outline),
		Err:      err,
		Duration: time.Since(start),
	}
	if err == nil {
		log.Info("completed",
			"headings", res.Headings,
			"title", doc.Title != "",
			"duration_ms", res.Duration.Milliseconds(),
		)
	}
	return res
}

// listPDFs returns the sorted paths of all *.pdf files directly in dir.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// outputName maps input.pdf to input.json.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

func writeJSON(path string, doc outline.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
