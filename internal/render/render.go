// Package render adapts the PDF library's page content into the flat
// line sequence the outline engine consumes: glyph runs are grouped
// into spans by font, rows into lines, pages in ascending order.
package render

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgallion1/pdfoutline/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
)

// wordGapFactor scales a glyph's font size into the horizontal gap
// beyond which a word boundary is inserted.
const wordGapFactor = 0.25

// defaultPageHeight (US Letter) is assumed when a page has no
// resolvable MediaBox.
const defaultPageHeight = 792.0

// Metadata is the document-level information read from the PDF.
type Metadata struct {
	Title string
	Pages int
}

// ExtractLines opens a PDF and returns its text lines in document
// order (page ascending, top of page first) plus document metadata.
// A failing page is logged and skipped; it contributes no lines.
func ExtractLines(path string, log *slog.Logger) ([]layout.Line, Metadata, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	meta := Metadata{
		Title: metadataTitle(reader),
		Pages: reader.NumPage(),
	}

	var lines []layout.Line
	for pageNum := 1; pageNum <= meta.Pages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageLines, err := extractPage(page, pageNum)
		if err != nil {
			log.Warn("page extraction failed", "page", pageNum, "error", err)
			continue
		}
		lines = append(lines, pageLines...)
	}
	for i := range lines {
		lines[i].Index = i
	}
	return lines, meta, nil
}

// extractPage converts one page's rows into lines. The library panics
// on some malformed content streams; the recover keeps the failure
// contained to this page.
func extractPage(page pdflib.Page, pageNum int) (lines []layout.Line, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("page %d: panic: %v", pageNum, r)
		}
	}()

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageNum, err)
	}
	height := pageHeight(page)

	// Top of the page first. PDF Y grows upward, so higher position
	// values come first.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position > rows[j].Position })

	for _, row := range rows {
		ln, ok := layout.NewLine(pageNum, groupSpans(row.Content, height))
		if !ok {
			continue
		}
		lines = append(lines, ln)
	}
	return lines, nil
}

// groupSpans merges a row's glyph runs into spans: consecutive glyphs
// sharing font and size belong to one span, with word spaces inserted
// on horizontal gaps.
func groupSpans(texts pdflib.TextHorizontal, pageHeight float64) []layout.Span {
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var spans []layout.Span
	var cur *layout.Span
	var sb strings.Builder
	var last pdflib.Text

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = sb.String()
		if strings.TrimSpace(cur.Text) != "" {
			spans = append(spans, *cur)
		}
		cur = nil
		sb.Reset()
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		if cur == nil || t.Font != cur.Font || t.FontSize != cur.Size {
			flush()
			bold, italic := styleFromFont(t.Font)
			cur = &layout.Span{
				Font:   t.Font,
				Size:   t.FontSize,
				Bold:   bold,
				Italic: italic,
				BBox: layout.BBox{
					X0: t.X,
					Y0: pageHeight - (t.Y + t.FontSize),
					X1: t.X + t.W,
					Y1: pageHeight - t.Y,
				},
			}
		} else {
			if gap := t.X - (last.X + last.W); gap > wordGapFactor*t.FontSize {
				sb.WriteString(" ")
			}
			if t.X+t.W > cur.BBox.X1 {
				cur.BBox.X1 = t.X + t.W
			}
		}
		sb.WriteString(t.S)
		last = t
	}
	flush()
	return spans
}

// styleFromFont derives style flags from the font name. The library
// exposes no style flags, but embedded font names carry the face:
// "Helvetica-Bold", "TimesNewRoman,Italic" and so on.
func styleFromFont(name string) (bold, italic bool) {
	n := strings.ToLower(name)
	bold = strings.Contains(n, "bold") || strings.Contains(n, "black") || strings.Contains(n, "heavy")
	italic = strings.Contains(n, "italic") || strings.Contains(n, "oblique")
	return bold, italic
}

// pageHeight resolves the page's MediaBox height, following the
// Parent chain for inherited boxes.
func pageHeight(page pdflib.Page) float64 {
	v := page.V
	for i := 0; i < 16 && !v.IsNull(); i++ {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			return mb.Index(3).Float64() - mb.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// metadataTitle reads the Info dictionary title, tolerating the
// library's panics on malformed trailers.
func metadataTitle(reader *pdflib.Reader) (title string) {
	defer func() {
		if r := recover(); r != nil {
			title = ""
		}
	}()
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return strings.TrimSpace(info.Key("Title").Text())
}
