package outline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/pdfoutline/internal/fontstat"
	"github.com/dgallion1/pdfoutline/internal/layout"
	"github.com/dgallion1/pdfoutline/internal/textpat"
)

var levelNames = []string{"H1", "H2", "H3"}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Detect runs the full candidate pipeline over the extracted lines:
// scoring, dedup and density filtering, ranking, level assignment and
// a final validation pass. The result is sorted by page ascending with
// in-page document order preserved.
func Detect(lines []layout.Line, prof fontstat.Profile, cfg Config) []Entry {
	cands := collect(lines, prof, cfg)
	cands = filterCandidates(cands, cfg)
	cands = rankCandidates(cands, cfg.Patterns)
	return validate(assignLevels(cands))
}

// collect scores every line and keeps those at or above the threshold.
func collect(lines []layout.Line, prof fontstat.Profile, cfg Config) []Candidate {
	var cands []Candidate
	for i, ln := range lines {
		score := Score(lines, i, prof, cfg.Patterns)
		if score < cfg.MinScore {
			continue
		}
		cands = append(cands, Candidate{
			ID:        fmt.Sprintf("heading_%d", i),
			Text:      ln.Text,
			Page:      ln.Page,
			Score:     score,
			FontSize:  ln.MeanSize(),
			Weight:    ln.DominantWeight(),
			Position:  ln.BBox.Y0,
			LineIndex: i,
		})
	}
	return cands
}

// filterCandidates drops duplicates and enforces the per-page density
// cap. Candidates are visited in descending score order, so the first
// occurrence of a duplicated text is the highest-scoring one.
func filterCandidates(cands []Candidate, cfg Config) []Candidate {
	if len(cands) == 0 {
		return cands
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })

	seen := make(map[string]bool)
	perPage := make(map[int]int)
	filtered := cands[:0]
	for _, c := range cands {
		key := strings.ToLower(strings.TrimSpace(c.Text))
		if seen[key] {
			continue
		}
		if perPage[c.Page] >= cfg.MaxPerPage {
			continue
		}
		filtered = append(filtered, c)
		seen[key] = true
		perPage[c.Page]++
	}
	return filtered
}

// rankCandidates restores document order and applies the final score
// boosts for early pages and numbered headings. The boosts adjust the
// score field only; level assignment keys on font size alone.
func rankCandidates(cands []Candidate, ps *textpat.PatternSet) []Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Page != cands[j].Page {
			return cands[i].Page < cands[j].Page
		}
		return cands[i].Position < cands[j].Position
	})
	for i := range cands {
		if cands[i].Page <= 3 {
			cands[i].Score *= 1.1
		}
		if tok, _ := ps.ExtractNumbering(cands[i].Text); tok != "" {
			cands[i].Score *= 1.2
		}
	}
	return cands
}

type levelKey struct {
	size   float64
	weight layout.Weight
}

// weightRank orders weights within a size tie: heavier faces read as
// higher levels.
func weightRank(w layout.Weight) int {
	switch w {
	case layout.WeightBold:
		return 0
	case layout.WeightNormal:
		return 1
	default:
		return 2
	}
}

// assignLevels groups candidates by (rounded mean size, dominant
// weight) and maps the three largest groups to H1..H3. Candidates in
// any smaller group are dropped. Input order (page, position) is
// preserved in the output.
func assignLevels(cands []Candidate) []Entry {
	if len(cands) == 0 {
		return nil
	}

	groups := make(map[levelKey]bool)
	for _, c := range cands {
		groups[levelKey{size: fontstat.Round1(c.FontSize), weight: c.Weight}] = true
	}
	keys := make([]levelKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].size != keys[j].size {
			return keys[i].size > keys[j].size
		}
		return weightRank(keys[i].weight) < weightRank(keys[j].weight)
	})

	levelFor := make(map[levelKey]string, len(levelNames))
	for i, k := range keys {
		if i >= len(levelNames) {
			break
		}
		levelFor[k] = levelNames[i]
	}

	var entries []Entry
	for _, c := range cands {
		level, ok := levelFor[levelKey{size: fontstat.Round1(c.FontSize), weight: c.Weight}]
		if !ok {
			continue
		}
		entries = append(entries, Entry{Level: level, Text: c.Text, Page: c.Page})
	}
	return entries
}

// validate normalizes whitespace and drops entries whose cleaned text
// is degenerate.
func validate(entries []Entry) []Entry {
	cleaned := entries[:0]
	for _, e := range entries {
		e.Text = strings.TrimSpace(whitespaceRe.ReplaceAllString(e.Text, " "))
		n := utf8.RuneCountInString(e.Text)
		if n < 2 || n > 200 {
			continue
		}
		cleaned = append(cleaned, e)
	}
	return cleaned
}
