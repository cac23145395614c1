// Package fontstat derives a document font profile from the extracted
// lines: the dominant body text size and the descending hierarchy of
// sizes large enough to carry headings.
package fontstat

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/layout"
)

// SizeGapThreshold is the minimum difference in points between a size
// and the body size before the size counts as a hierarchy level.
const SizeGapThreshold = 2.0

// defaultBodySize is assumed when a document has no measurable text.
const defaultBodySize = 12.0

// maxLevels caps the derived hierarchy at H1..H3.
const maxLevels = 3

// SizeLevel is one rung of the derived heading-size hierarchy.
type SizeLevel struct {
	Size     float64
	Relative float64 // Size / BodySize
	Level    int     // 1-based, capped at 3
}

// Profile is the read-only font summary for one document.
type Profile struct {
	BodySize   float64
	SizeWeight map[float64]int // rounded size -> total character weight
	Hierarchy  []SizeLevel
}

// Analyze accumulates every span's size, rounded to 0.1pt and weighted
// by its character count, and derives body size and size hierarchy.
// When two sizes carry equal weight the larger one becomes body size,
// keeping the result independent of iteration order.
func Analyze(lines []layout.Line) Profile {
	weight := make(map[float64]int)
	for _, ln := range lines {
		for _, sp := range ln.Spans {
			weight[Round1(sp.Size)] += utf8.RuneCountInString(sp.Text)
		}
	}
	if len(weight) == 0 {
		return Profile{BodySize: defaultBodySize, SizeWeight: weight}
	}

	body := 0.0
	best := -1
	for size, w := range weight {
		if w > best || (w == best && size > body) {
			best = w
			body = size
		}
	}

	var sizes []float64
	for size := range weight {
		if size > body+SizeGapThreshold {
			sizes = append(sizes, size)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))
	if len(sizes) > maxLevels {
		sizes = sizes[:maxLevels]
	}

	hierarchy := make([]SizeLevel, 0, len(sizes))
	for i, size := range sizes {
		hierarchy = append(hierarchy, SizeLevel{
			Size:     size,
			Relative: size / body,
			Level:    i + 1,
		})
	}

	return Profile{
		BodySize:   body,
		SizeWeight: weight,
		Hierarchy:  hierarchy,
	}
}

// Round1 rounds a font size to one decimal place.
func Round1(size float64) float64 {
	return math.Round(size*10) / 10
}
