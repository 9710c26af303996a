// Package extractor pulls raw text out of statement PDFs, page by page.
//
// The primary backend is the ledongthuc/pdf library. Pages for which it
// yields no text are retried against a raw content-stream backend that
// decodes text operators and ToUnicode CMaps directly, which handles
// statements using CIDFont/Type0 encodings the library cannot decode.
package extractor

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"

	"github.com/finlens/statement-insights/internal/models"
)

// pageBatchSize bounds how many pages are decoded per pass. Batching
// only limits peak memory; output ordering and content are unaffected.
const pageBatchSize = 5

// Extractor extracts per-page text from a PDF source.
type Extractor struct {
	log *log.Logger
}

// New returns an Extractor that logs recovered per-page failures to logger.
func New(logger *log.Logger) *Extractor {
	return &Extractor{log: logger}
}

// PagesFromFile reads the file at path and extracts text for each page.
func (e *Extractor) PagesFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDocumentUnreadable, err)
	}
	return e.PagesFromBytes(data)
}

// PagesFromBytes extracts text for each page of the PDF in data.
// The returned slice has one entry per page; a page that yields no text
// from any backend is an empty string. A document that cannot be opened
// at all fails with models.ErrDocumentUnreadable.
func (e *Extractor) PagesFromBytes(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pdf reader panicked: %v", models.ErrDocumentUnreadable, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDocumentUnreadable, err)
	}

	numPages := reader.NumPage()
	pages = make([]string, numPages)

	// Raw-backend pages are computed lazily, once, the first time the
	// primary backend comes up empty for a page.
	var rawPages []string
	rawDone := false
	rawFallback := func(i int) string {
		if !rawDone {
			rawDone = true
			rawPages = extractRaw(data)
		}
		if i < len(rawPages) {
			return rawPages[i]
		}
		return ""
	}

	for start := 0; start < numPages; start += pageBatchSize {
		end := start + pageBatchSize
		if end > numPages {
			end = numPages
		}
		for i := start; i < end; i++ {
			text, pageErr := e.extractPage(reader, i+1)
			if pageErr != nil {
				e.log.Warn("page extraction failed", "page", i+1, "err", pageErr)
			}
			if strings.TrimSpace(text) == "" {
				text = rawFallback(i)
				if strings.TrimSpace(text) != "" {
					e.log.Debug("raw backend recovered page", "page", i+1)
				}
			}
			pages[i] = text
		}
	}

	// A text-empty document is a valid empty statement downstream.
	// Garbage text, on the other hand, means the fonts could not be
	// decoded and nothing useful can be parsed from the output.
	if totalTextLen(pages) > 0 && !isReadableText(pages) {
		return nil, fmt.Errorf("%w: extracted text is unreadable; the file may use undecodable font encodings", models.ErrDocumentUnreadable)
	}

	return pages, nil
}

// extractPage pulls the text of a single page, trying row extraction
// first and falling back to coordinate-based reconstruction. A panic in
// the library is contained to the page.
func (e *Extractor) extractPage(r *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page %d: pdf library panicked: %v", pageNum, rec)
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}

	if text := pageTextByRow(page); strings.TrimSpace(text) != "" {
		return text, nil
	}
	return pageTextByContent(page), nil
}

// pageTextByRow uses GetTextByRow, which preserves layout best.
func pageTextByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// pageTextByContent groups raw text objects by Y coordinate to
// reconstruct rows, then orders each row by X.
func pageTextByContent(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type textItem struct {
		x float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
	}

	// PDF Y runs bottom-to-top, so rows sort descending.
	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool {
			return items[a].x < items[b].x
		})

		var parts []string
		var prevX float64
		for j, item := range items {
			if j > 0 && item.x-prevX > 15 {
				// Large X gap means a column boundary.
				parts = append(parts, "  ")
			}
			parts = append(parts, item.s)
			prevX = item.x
		}
		line := strings.TrimSpace(strings.Join(parts, ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// statementWords appear in virtually every bank or payment-platform
// statement. Extracted text containing none of them is treated as garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "transaction", "narration",
	"withdrawal", "deposit", "upi", "transfer", "opening", "closing",
	"number", "page", "period",
}

// isReadableText checks that pages contain enough text, that it is
// mostly readable characters rather than binary garbage, and that it
// contains at least one word expected in a statement.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of readable characters to total
// characters, 0.0-1.0. The check is strict ASCII plus currency symbols;
// unicode.IsLetter is too broad and matches the accented garbage that
// identity-encoded fonts produce.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(".,-/:;()'\"%&@#!?+=*\t", r) ||
				r == '₹' || r == '£' || r == '$' || r == '€' {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
