package outline

import (
	"math"
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/fontstat"
	"github.com/dgallion1/pdfoutline/internal/layout"
	"github.com/dgallion1/pdfoutline/internal/textpat"
)

// sectionGap is the vertical whitespace, in points, that marks a line
// as starting a new section.
const sectionGap = 20.0

// isolationSizeGap is the size difference to the following line, in
// points, beyond which a line counts as visually isolated.
const isolationSizeGap = 2.0

// Score returns the heading confidence for lines[i], clamped to [0,1].
// It is a pure function of the line, the document font profile and the
// line's neighbors; it mutates nothing.
func Score(lines []layout.Line, i int, prof fontstat.Profile, ps *textpat.PatternSet) float64 {
	ln := lines[i]
	text := ln.Text
	score := 0.0

	if ps.IsLikelyHeading(text) {
		score += 0.4
	}
	if ps.IsLikelyNonTitle(text) {
		score -= 0.5
	}

	if prof.BodySize > 0 {
		if r := ln.MeanSize() / prof.BodySize; r > 1.2 {
			score += math.Min(0.3, (r-1.0)*0.3)
		}
	}

	score += 0.2 * ln.BoldRatio()

	n := utf8.RuneCountInString(text)
	switch {
	case n >= 5 && n <= 100:
		score += 0.2
	case n <= 5:
		score -= 0.2
	case n > 200:
		score -= 0.3
	}

	if startsSection(lines, i) {
		score += 0.2
	}

	if tok, _ := ps.ExtractNumbering(text); tok != "" {
		score += 0.3
	}

	if isolated(lines, i) {
		score += 0.15
	}

	if lang := textpat.DetectLanguage(text); lang == "ja" || lang == "zh" || lang == "ko" {
		score += textpat.CJKBonus(text)
	}

	return math.Max(0, math.Min(1, score))
}

// startsSection reports whether lines[i] opens a new section: either a
// vertical gap of more than sectionGap points to the previous line on
// the same page, or the first line of any page after page 1.
func startsSection(lines []layout.Line, i int) bool {
	ln := lines[i]
	if i > 0 {
		prev := lines[i-1]
		if ln.Page == prev.Page && ln.BBox.Y0-prev.BBox.Y1 > sectionGap {
			return true
		}
	}
	if ln.Page > 1 && (i == 0 || lines[i-1].Page != ln.Page) {
		return true
	}
	return false
}

// isolated reports whether lines[i] stands alone: short text, or a
// following line set in a materially different size.
func isolated(lines []layout.Line, i int) bool {
	if utf8.RuneCountInString(lines[i].Text) <= 50 {
		return true
	}
	if i < len(lines)-1 {
		if math.Abs(lines[i].MeanSize()-lines[i+1].MeanSize()) > isolationSizeGap {
			return true
		}
	}
	return false
}
