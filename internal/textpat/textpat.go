// Package textpat is the stateless text classifier behind heading
// detection: pattern tables for heading/non-title text, numbering
// extraction and a small language detector for CJK-specific rules.
package textpat

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Numbering extraction is tried in this order; the first match wins.
var numberingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(\d+(?:\.\d+)*)\.?\s+(.+)$`), // dotted numeric
	regexp.MustCompile(`(?i)^([IVXLC]+)\.?\s+(.+)$`),      // roman numerals
	regexp.MustCompile(`(?i)^([A-Z])\.?\s+(.+)$`),         // single letter
	regexp.MustCompile(`(?i)^(第\d+章)\s*(.+)$`),            // Japanese chapter
	regexp.MustCompile(`(?i)^(Chapter|Section|Part)\s+(\d+)\s*(.+)$`),
}

var (
	cjkChapterJa = regexp.MustCompile(`第[一二三四五六七八九十\d]+章`)
	cjkEnumeral  = regexp.MustCompile(`[一二三四五六七八九十]+[、。]`)
	cjkChapterZh = regexp.MustCompile(`第[一二三四五六七八九十\d]+[章节部分]`)
	cjkChapterKo = regexp.MustCompile(`제\s*\d+\s*[장절부]`)
	cjkIdeograph = regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)
)

// IsLikelyNonTitle reports whether text is unlikely to be a title or
// heading: page numbers, captions, URLs, copyright lines and similar.
func (ps *PatternSet) IsLikelyNonTitle(text string) bool {
	text = strings.TrimSpace(text)
	if ps.matchAny(CategoryNonTitle, text) {
		return true
	}
	if utf8.RuneCountInString(text) < 3 {
		return true
	}
	if strings.Count(text, ".") > 3 {
		return true
	}
	if strings.Contains(text, "\n") {
		return true
	}
	return false
}

// IsLikelyHeading reports whether text looks like a heading. Besides
// the pattern tables it accepts two fallbacks: a capitalized line of
// at most 100 characters without a trailing period, and a question of
// at most 80 characters.
func (ps *PatternSet) IsLikelyHeading(text string) bool {
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	if n < 2 || n > 200 {
		return false
	}
	if ps.matchAny(CategoryHeading, text) {
		return true
	}
	first, _ := utf8.DecodeRuneInString(text)
	if unicode.IsUpper(first) &&
		n <= 100 &&
		!strings.HasSuffix(text, ".") &&
		strings.Count(text, ".") <= 1 {
		return true
	}
	if strings.HasSuffix(text, "?") && n <= 80 {
		return true
	}
	return false
}

// ExtractNumbering strips a leading numbering token ("1.2.3", "IV",
// "A", "第3章", "Chapter 4") and returns it with the remaining text.
// When no pattern matches it returns ("", text).
func (ps *PatternSet) ExtractNumbering(text string) (string, string) {
	text = strings.TrimSpace(text)
	for _, re := range numberingPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) == 4 {
			// Chapter/Section/Part form: keyword + number.
			return m[1] + " " + m[2], m[3]
		}
		return m[1], m[2]
	}
	return "", text
}

// DetectLanguage classifies text as "ja", "zh", "ko" or "en" from its
// script. Kana wins over ideographs, ideographs over hangul; rules are
// checked in that order.
func DetectLanguage(text string) string {
	var kana, han, hangul bool
	for _, r := range text {
		switch {
		case r >= 0x3040 && r <= 0x309F, r >= 0x30A0 && r <= 0x30FF:
			kana = true
		case r >= 0x4E00 && r <= 0x9FFF:
			han = true
		case r >= 0xAC00 && r <= 0xD7AF:
			hangul = true
		}
	}
	switch {
	case kana:
		return "ja"
	case han:
		return "zh"
	case hangul:
		return "ko"
	}
	return "en"
}

// CJKBonus returns the score bonus for CJK chapter markers: one of the
// explicit chapter/section patterns, else enumerated numerals, plus a
// flat bonus for short ideographic lines.
func CJKBonus(text string) float64 {
	bonus := 0.0
	switch {
	case cjkChapterJa.MatchString(text):
		bonus += 0.3
	case cjkEnumeral.MatchString(text):
		bonus += 0.2
	case cjkChapterZh.MatchString(text):
		bonus += 0.3
	case cjkChapterKo.MatchString(text):
		bonus += 0.3
	}
	if utf8.RuneCountInString(text) <= 30 && cjkIdeograph.MatchString(text) {
		bonus += 0.1
	}
	return bonus
}
