package fontstat

import (
	"strings"
	"testing"

	"github.com/dgallion1/pdfoutline/internal/layout"
)

func mkLine(t *testing.T, page int, text string, size float64) layout.Line {
	t.Helper()
	ln, ok := layout.NewLine(page, []layout.Span{{Text: text, Size: size}})
	if !ok {
		t.Fatalf("failed to build line %q", text)
	}
	return ln
}

func TestAnalyze_BodySizeByCharacterWeight(t *testing.T) {
	// Few large-size characters must not outweigh lots of body text.
	lines := []layout.Line{
		mkLine(t, 1, "Big", 18),
		mkLine(t, 1, strings.Repeat("body text ", 10), 12),
		mkLine(t, 1, strings.Repeat("more body ", 10), 12),
	}
	prof := Analyze(lines)
	if prof.BodySize != 12 {
		t.Errorf("expected body size 12, got %f", prof.BodySize)
	}
	if prof.SizeWeight[18] != 3 {
		t.Errorf("expected weight 3 for size 18, got %d", prof.SizeWeight[18])
	}
}

func TestAnalyze_TieBreakPrefersLargerSize(t *testing.T) {
	lines := []layout.Line{
		mkLine(t, 1, "aaaa", 10),
		mkLine(t, 1, "bbbb", 12),
	}
	prof := Analyze(lines)
	if prof.BodySize != 12 {
		t.Errorf("expected larger size to win the tie, got %f", prof.BodySize)
	}
}

func TestAnalyze_RoundsSizesTogether(t *testing.T) {
	lines := []layout.Line{
		mkLine(t, 1, "aa", 11.96),
		mkLine(t, 1, "bb", 12.04),
		mkLine(t, 1, "c", 9),
	}
	prof := Analyze(lines)
	if prof.BodySize != 12.0 {
		t.Errorf("expected rounded sizes to accumulate at 12.0, got %f", prof.BodySize)
	}
	if prof.SizeWeight[12.0] != 4 {
		t.Errorf("expected combined weight 4, got %d", prof.SizeWeight[12.0])
	}
}

func TestAnalyze_Hierarchy(t *testing.T) {
	lines := []layout.Line{
		mkLine(t, 1, strings.Repeat("body ", 20), 12),
		mkLine(t, 1, "Title", 24),
		mkLine(t, 1, "Section", 18),
		mkLine(t, 2, "Subsection", 15),
		mkLine(t, 2, "Minor", 14.5),
		// Too close to body size to count as a level.
		mkLine(t, 2, "Near body", 13.5),
	}
	prof := Analyze(lines)
	if len(prof.Hierarchy) != 3 {
		t.Fatalf("expected hierarchy capped at 3, got %d", len(prof.Hierarchy))
	}
	wantSizes := []float64{24, 18, 15}
	for i, lvl := range prof.Hierarchy {
		if lvl.Size != wantSizes[i] {
			t.Errorf("level %d: expected size %f, got %f", i, wantSizes[i], lvl.Size)
		}
		if lvl.Level != i+1 {
			t.Errorf("level %d: expected level index %d, got %d", i, i+1, lvl.Level)
		}
	}
	if prof.Hierarchy[0].Relative != 2.0 {
		t.Errorf("expected relative size 2.0 for 24pt, got %f", prof.Hierarchy[0].Relative)
	}
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	prof := Analyze(nil)
	if prof.BodySize != 12 {
		t.Errorf("expected default body size 12, got %f", prof.BodySize)
	}
	if len(prof.Hierarchy) != 0 {
		t.Errorf("expected empty hierarchy, got %d entries", len(prof.Hierarchy))
	}
}

func TestRound1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{11.96, 12.0},
		{12.04, 12.0},
		{12.06, 12.1},
		{9.0, 9.0},
	}
	for _, tc := range tests {
		if got := Round1(tc.in); got != tc.want {
			t.Errorf("Round1(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
