// Package layout defines the typed page-geometry records the outline
// engine operates on: spans, lines and their bounding boxes.
package layout

import "strings"

// Weight classifies the font weight of a span.
type Weight string

const (
	WeightNormal Weight = "normal"
	WeightBold   Weight = "bold"
	WeightItalic Weight = "italic"
)

// BBox is an axis-aligned bounding box in top-down page coordinates:
// Y0 is the top edge, so a smaller Y means higher on the page.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Union returns the smallest box covering both b and o.
func (b BBox) Union(o BBox) BBox {
	if o.X0 < b.X0 {
		b.X0 = o.X0
	}
	if o.Y0 < b.Y0 {
		b.Y0 = o.Y0
	}
	if o.X1 > b.X1 {
		b.X1 = o.X1
	}
	if o.Y1 > b.Y1 {
		b.Y1 = o.Y1
	}
	return b
}

// Span is a contiguous run of text sharing font attributes.
type Span struct {
	Text   string
	Font   string
	Size   float64 // in points
	Bold   bool
	Italic bool
	BBox   BBox
}

// Weight returns the span's weight bucket. Bold wins when bold and
// italic co-occur.
func (s Span) Weight() Weight {
	switch {
	case s.Bold:
		return WeightBold
	case s.Italic:
		return WeightItalic
	default:
		return WeightNormal
	}
}

// Line is one visual line of text, composed of one or more spans.
type Line struct {
	Text  string
	Page  int // 1-indexed
	BBox  BBox
	Spans []Span
	Index int // position in the document-wide line sequence
}

// NewLine builds a Line from spans, dropping whitespace-only spans.
// It returns false when the page number is invalid or no text remains
// after trimming; such lines never enter the pipeline.
func NewLine(page int, spans []Span) (Line, bool) {
	if page < 1 {
		return Line{}, false
	}
	kept := make([]Span, 0, len(spans))
	parts := make([]string, 0, len(spans))
	var box BBox
	for _, s := range spans {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		s.Text = t
		if len(kept) == 0 {
			box = s.BBox
		} else {
			box = box.Union(s.BBox)
		}
		kept = append(kept, s)
		parts = append(parts, t)
	}
	if len(kept) == 0 {
		return Line{}, false
	}
	return Line{
		Text:  strings.Join(parts, " "),
		Page:  page,
		BBox:  box,
		Spans: kept,
	}, true
}

// MeanSize returns the mean span font size.
func (l Line) MeanSize() float64 {
	if len(l.Spans) == 0 {
		return 0
	}
	var sum float64
	for _, s := range l.Spans {
		sum += s.Size
	}
	return sum / float64(len(l.Spans))
}

// BoldRatio returns the fraction of spans that are bold.
func (l Line) BoldRatio() float64 {
	if len(l.Spans) == 0 {
		return 0
	}
	bold := 0
	for _, s := range l.Spans {
		if s.Bold {
			bold++
		}
	}
	return float64(bold) / float64(len(l.Spans))
}

// DominantWeight returns the most common span weight. On a tie the
// weight encountered first in span order wins.
func (l Line) DominantWeight() Weight {
	if len(l.Spans) == 0 {
		return WeightNormal
	}
	counts := make(map[Weight]int, 3)
	for _, s := range l.Spans {
		counts[s.Weight()]++
	}
	best := l.Spans[0].Weight()
	for _, s := range l.Spans {
		if counts[s.Weight()] > counts[best] {
			best = s.Weight()
		}
	}
	return best
}
