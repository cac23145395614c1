package textpat

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Category names a pattern table used by the classifier.
type Category string

const (
	CategoryNonTitle Category = "non_title"
	CategoryHeading  Category = "heading"
)

// defaultTable is the built-in pattern configuration, one entry per
// category. Patterns are tried in order. Non-title patterns search
// anywhere in the text; heading patterns are all start-anchored.
var defaultTable = []struct {
	category    Category
	insensitive bool
	patterns    []string
}{
	{
		category:    CategoryNonTitle,
		insensitive: true,
		patterns: []string{
			`^(page|p\.)\s*\d+`,              // page-number markers
			`^\d+\s*$`,                       // pure numbers
			`^(abstract|introduction|conclusion|references|bibliography)$`,
			`^(figure|table|chart)\s*\d*`,    // captions
			`@|\.com|\.org|\.edu`,            // email/URL fragments
			`^(copyright|©|\(c\))`,           // copyright notices
			`^\d{4}$`,                        // bare years
			`^[a-z\s]{1,3}$`,                 // very short fragments
		},
	},
	{
		category: CategoryHeading,
		patterns: []string{
			`^\d+\.?\s+[A-Z]`,                  // "1. Introduction"
			`^[A-Z][A-Z\s]{2,}$`,               // ALL CAPS
			`^(Chapter|Section|Part)\s+\d+`,    // "Chapter 1"
			`^\d+(\.\d+)*\.?\s+`,               // 1.1, 1.1.1
			`^[IVXLC]+\.?\s+[A-Z]`,             // roman numerals
			`^[A-Z]\.?\s+[A-Z]`,                // "A. Introduction"
			`^第[一二三四五六七八九十\d]+章`,           // Japanese chapter
			`^[一二三四五六七八九十]+[、。]`,            // Japanese numerals
			`^[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]{1,50}$`, // short CJK-only line
			`^第[一二三四五六七八九十\d]+[章节部分]`,       // Chinese chapter/section
			`^제\s*\d+\s*[장절부]`,                // Korean chapter/section
		},
	},
}

// PatternSet holds the compiled classifier pattern tables. It is built
// once and never mutated afterwards.
type PatternSet struct {
	tables map[Category][]*regexp.Regexp
}

// Default returns a PatternSet compiled from the built-in tables.
func Default() *PatternSet {
	ps, err := compile(nil)
	if err != nil {
		// The built-in tables are constants; a compile failure is a bug.
		panic(err)
	}
	return ps
}

// File is the YAML shape for user-supplied pattern additions. Listed
// patterns are appended after the built-in tables of their category.
type File struct {
	NonTitle []string `yaml:"non_title"`
	Heading  []string `yaml:"heading"`
}

// Load reads a YAML pattern file and returns the defaults extended
// with its entries.
func Load(path string) (*PatternSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	return compile(&f)
}

func compile(extra *File) (*PatternSet, error) {
	ps := &PatternSet{tables: make(map[Category][]*regexp.Regexp)}
	for _, entry := range defaultTable {
		pats := entry.patterns
		if extra != nil {
			switch entry.category {
			case CategoryNonTitle:
				pats = append(append([]string{}, pats...), extra.NonTitle...)
			case CategoryHeading:
				pats = append(append([]string{}, pats...), extra.Heading...)
			}
		}
		for _, p := range pats {
			if entry.insensitive {
				p = "(?i)" + p
			}
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("pattern %q (%s): %w", p, entry.category, err)
			}
			ps.tables[entry.category] = append(ps.tables[entry.category], re)
		}
	}
	return ps, nil
}

func (ps *PatternSet) matchAny(cat Category, text string) bool {
	for _, re := range ps.tables[cat] {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
