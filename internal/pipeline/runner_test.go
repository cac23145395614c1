package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/outline"
)

// fakeExtractor returns canned documents per file base name.
type fakeExtractor struct {
	docs map[string]outline.Document
	errs map[string]error
}

func (f *fakeExtractor) ExtractFile(path string) (outline.Document, error) {
	base := filepath.Base(path)
	if err := f.errs[base]; err != nil {
		return outline.Empty(), err
	}
	if doc, ok := f.docs[base]; ok {
		return doc, nil
	}
	return outline.Empty(), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func writeFakePDF(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4 stub"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		InputDir:    t.TempDir(),
		OutputDir:   t.TempDir(),
		WorkerCount: 2,
	}
}

func TestRun_WritesOneJSONPerInput(t *testing.T) {
	cfg := testConfig(t)
	writeFakePDF(t, cfg.InputDir, "a.pdf")
	writeFakePDF(t, cfg.InputDir, "b.pdf")
	writeFakePDF(t, cfg.InputDir, "notes.txt")

	ext := &fakeExtractor{
		docs: map[string]outline.Document{
			"a.pdf": {
				Title: "Report A",
				Outline: []outline.Entry{
					{Level: "H1", Text: "Introduction", Page: 1},
					{Level: "H2", Text: "Scope", Page: 2},
				},
			},
		},
	}
	r := NewRunner(cfg, ext, discardLogger())

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results (txt skipped), got %d", len(results))
	}
	if results[0].File != "a.pdf" || results[1].File != "b.pdf" {
		t.Errorf("expected results sorted by file, got %+v", results)
	}
	if results[0].Headings != 2 {
		t.Errorf("expected 2 headings for a.pdf, got %d", results[0].Headings)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "a.json"))
	if err != nil {
		t.Fatalf("missing output: %v", err)
	}
	for _, want := range []string{`"Report A"`, `"H1"`, `"Introduction"`, `"page": 1`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("a.json missing %s:\n%s", want, data)
		}
	}
}

func TestRun_FailedExtractionStillWritesEmptyOutline(t *testing.T) {
	cfg := testConfig(t)
	writeFakePDF(t, cfg.InputDir, "broken.pdf")

	ext := &fakeExtractor{
		errs: map[string]error{"broken.pdf": errors.New("garbled xref")},
	}
	r := NewRunner(cfg, ext, discardLogger())

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("batch must not fail on a per-file error: %v", err)
	}
	if len(results) != 1 || results[0].Err == nil {
		t.Fatalf("expected 1 failed result, got %+v", results)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "broken.json"))
	if err != nil {
		t.Fatalf("expected output even on failure: %v", err)
	}
	if !strings.Contains(string(data), `"outline": []`) {
		t.Errorf("expected empty outline array, got:\n%s", data)
	}
}

func TestRun_EmptyInputDir(t *testing.T) {
	cfg := testConfig(t)
	r := NewRunner(cfg, &fakeExtractor{}, discardLogger())

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRun_MissingInputDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputDir = filepath.Join(cfg.InputDir, "does-not-exist")
	r := NewRunner(cfg, &fakeExtractor{}, discardLogger())

	if _, err := r.Run(context.Background()); err == nil {
		t.Error("expected error for missing input dir")
	}
}

func TestRun_CanceledContext(t *testing.T) {
	cfg := testConfig(t)
	writeFakePDF(t, cfg.InputDir, "a.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(cfg, &fakeExtractor{}, discardLogger())
	if _, err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/tmp/in/report.pdf", "report.json"},
		{"scan.PDF", "scan.json"},
		{"no-ext", "no-ext.json"},
	}
	for _, tc := range tests {
		if got := outputName(tc.in); got != tc.want {
			t.Errorf("outputName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
