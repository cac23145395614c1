// Package outline is the heading-detection engine: it scores extracted
// lines, filters and ranks the surviving candidates, assigns H1-H3
// levels by font-size group and selects a document title.
package outline

import (
	"github.com/dgallion1/pdfoutline/internal/layout"
	"github.com/dgallion1/pdfoutline/internal/textpat"
)

// Entry is one heading in the final outline.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Document is the JSON output for one PDF.
type Document struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Empty is the degraded output written when processing fails or the
// document has no extractable text.
func Empty() Document {
	return Document{Title: "", Outline: []Entry{}}
}

// Candidate is a line provisionally judged to be a heading. Candidates
// are created once during scoring and, apart from the final
// multiplicative score boosts, never mutated.
type Candidate struct {
	ID        string
	Text      string
	Page      int
	Score     float64
	FontSize  float64 // mean span size
	Weight    layout.Weight
	Position  float64 // top edge, top-down coordinates
	LineIndex int
}

// Config tunes the heading detector.
type Config struct {
	MinScore   float64 // minimum score for a line to become a candidate
	MaxPerPage int     // density cap per page
	Patterns   *textpat.PatternSet
}

// DefaultConfig returns the canonical detector settings.
func DefaultConfig() Config {
	return Config{
		MinScore:   0.35,
		MaxPerPage: 10,
		Patterns:   textpat.Default(),
	}
}
