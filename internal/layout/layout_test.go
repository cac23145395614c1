package layout

import "testing"

func TestNewLine_JoinsSpansAndDropsWhitespace(t *testing.T) {
	spans := []Span{
		{Text: "Chapter", Size: 14, BBox: BBox{X0: 10, Y0: 100, X1: 60, Y1: 114}},
		{Text: "   ", Size: 14, BBox: BBox{X0: 60, Y0: 100, X1: 64, Y1: 114}},
		{Text: "One", Size: 14, BBox: BBox{X0: 64, Y0: 100, X1: 90, Y1: 114}},
	}
	ln, ok := NewLine(1, spans)
	if !ok {
		t.Fatal("expected line to be created")
	}
	if ln.Text != "Chapter One" {
		t.Errorf("expected %q, got %q", "Chapter One", ln.Text)
	}
	if len(ln.Spans) != 2 {
		t.Errorf("expected 2 spans after dropping whitespace, got %d", len(ln.Spans))
	}
	if ln.BBox.X0 != 10 || ln.BBox.X1 != 90 {
		t.Errorf("unexpected bbox union: %+v", ln.BBox)
	}
}

func TestNewLine_RejectsEmpty(t *testing.T) {
	if _, ok := NewLine(1, []Span{{Text: "  \t "}}); ok {
		t.Error("expected whitespace-only line to be rejected")
	}
	if _, ok := NewLine(1, nil); ok {
		t.Error("expected empty span list to be rejected")
	}
	if _, ok := NewLine(0, []Span{{Text: "text"}}); ok {
		t.Error("expected invalid page number to be rejected")
	}
}

func TestLine_MeanSize(t *testing.T) {
	ln, _ := NewLine(1, []Span{
		{Text: "a", Size: 10},
		{Text: "b", Size: 20},
	})
	if got := ln.MeanSize(); got != 15 {
		t.Errorf("expected mean size 15, got %f", got)
	}
	if got := (Line{}).MeanSize(); got != 0 {
		t.Errorf("expected 0 for empty line, got %f", got)
	}
}

func TestLine_BoldRatio(t *testing.T) {
	ln, _ := NewLine(1, []Span{
		{Text: "a", Size: 12, Bold: true},
		{Text: "b", Size: 12},
		{Text: "c", Size: 12},
		{Text: "d", Size: 12, Bold: true},
	})
	if got := ln.BoldRatio(); got != 0.5 {
		t.Errorf("expected bold ratio 0.5, got %f", got)
	}
}

func TestLine_DominantWeight(t *testing.T) {
	ln, _ := NewLine(1, []Span{
		{Text: "a", Size: 12, Bold: true},
		{Text: "b", Size: 12, Bold: true},
		{Text: "c", Size: 12},
	})
	if got := ln.DominantWeight(); got != WeightBold {
		t.Errorf("expected bold, got %s", got)
	}

	// On a tie, the weight seen first wins.
	tie, _ := NewLine(1, []Span{
		{Text: "a", Size: 12, Italic: true},
		{Text: "b", Size: 12},
	})
	if got := tie.DominantWeight(); got != WeightItalic {
		t.Errorf("expected italic on tie, got %s", got)
	}
}

func TestSpan_Weight(t *testing.T) {
	if got := (Span{Bold: true, Italic: true}).Weight(); got != WeightBold {
		t.Errorf("bold should win over italic, got %s", got)
	}
	if got := (Span{Italic: true}).Weight(); got != WeightItalic {
		t.Errorf("expected italic, got %s", got)
	}
	if got := (Span{}).Weight(); got != WeightNormal {
		t.Errorf("expected normal, got %s", got)
	}
}

func TestBBox_Union(t *testing.T) {
	a := BBox{X0: 10, Y0: 10, X1: 20, Y1: 20}
	b := BBox{X0: 5, Y0: 15, X1: 25, Y1: 18}
	u := a.Union(b)
	want := BBox{X0: 5, Y0: 10, X1: 25, Y1: 20}
	if u != want {
		t.Errorf("expected %+v, got %+v", want, u)
	}
}
