package outline

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/layout"
	"github.com/dgallion1/pdfoutline/internal/textpat"
)

// titleScanLimit is how many first-page lines the fallback scan
// considers.
const titleScanLimit = 10

// SelectTitle picks the document title. The metadata title wins when
// its length is in (3,150); otherwise the most prominent of the first
// page's leading lines is used, scored by font size with bold and
// first-page boosts. On a score tie the earlier line wins. Returns ""
// when nothing qualifies.
func SelectTitle(meta string, lines []layout.Line, ps *textpat.PatternSet) string {
	meta = strings.TrimSpace(meta)
	if n := utf8.RuneCountInString(meta); n > 3 && n < 150 {
		return meta
	}

	scanned := 0
	best := ""
	bestScore := 0.0
	for _, ln := range lines {
		if ln.Page != 1 {
			continue
		}
		if scanned >= titleScanLimit {
			break
		}
		scanned++

		n := utf8.RuneCountInString(ln.Text)
		if n < 5 || n > 200 {
			continue
		}
		if ps.IsLikelyNonTitle(ln.Text) {
			continue
		}

		score := ln.MeanSize()
		if ln.BoldRatio() > 0.5 {
			score *= 1.3
		}
		score *= 1.2 // first page

		if score > bestScore {
			bestScore = score
			best = ln.Text
		}
	}
	return best
}
