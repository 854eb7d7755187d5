// Package extract pulls plain text out of PDF research papers and
// segments it into sections.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the extracted text of one paper.
type Document struct {
	Text     string            // full plain text, in page order
	Abstract string            // best-effort abstract, may be empty
	Sections map[string]string // section name -> section text
	Pages    int               // pages actually read
}

// commonSections are header names seen in most papers, lowercase.
var commonSections = []string{
	"abstract", "introduction", "background", "related work",
	"method", "methodology", "experiment", "results", "evaluation",
	"discussion", "conclusion", "references", "appendix",
}

// numberedHeader matches headers like "1. Introduction" or "3 Results".
var numberedHeader = regexp.MustCompile(`^\d+\.?\s+\w+`)

// abstractPattern captures the text following an "Abstract" marker up to
// the first blank line.
var abstractPattern = regexp.MustCompile(`(?is)abstract[.\s]+(.*?)(?:\n\n|\r\n\r\n|$)`)

// PDF extracts text from the PDF at path. maxPages bounds the pages
// read; zero reads everything. Pages that fail to render are skipped
// rather than failing the whole document.
func PDF(path string, maxPages int) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if maxPages > 0 && pageCount > maxPages {
		pageCount = maxPages
	}

	var pages []string
	for i := 1; i <= pageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	text := strings.Join(pages, "\n")
	doc := &Document{
		Text:     text,
		Sections: splitSections(text),
		Pages:    pageCount,
	}

	doc.Abstract = doc.Sections["Abstract"]
	if doc.Abstract == "" {
		doc.Abstract = doc.Sections["ABSTRACT"]
	}
	if doc.Abstract == "" {
		doc.Abstract = findAbstract(text)
	}

	return doc, nil
}

// splitSections segments text into sections keyed by detected headers.
// Text before the first header lands under "Header".
func splitSections(text string) map[string]string {
	sections := make(map[string]string)
	current := "Header"
	var buffer []string

	for _, line := range strings.Split(text, "\n") {
		if isLikelySectionHeader(line) {
			if len(buffer) > 0 {
				sections[current] = strings.TrimSpace(strings.Join(buffer, "\n"))
				buffer = buffer[:0]
			}
			current = strings.TrimSpace(line)
			continue
		}
		buffer = append(buffer, line)
	}
	if len(buffer) > 0 {
		sections[current] = strings.TrimSpace(strings.Join(buffer, "\n"))
	}

	return sections
}

// isLikelySectionHeader reports whether a line looks like a section
// header: numbered, a known section name, or short ALL CAPS.
func isLikelySectionHeader(line string) bool {
	clean := strings.ToLower(strings.TrimSpace(line))

	// Too short is probably a page number; too long is body text.
	if len(clean) < 3 || len(clean) > 100 {
		return false
	}

	if numberedHeader.MatchString(line) {
		return true
	}

	for _, section := range commonSections {
		if clean == section || strings.HasPrefix(clean, section+".") {
			return true
		}
	}

	trimmed := strings.TrimSpace(line)
	if len(trimmed) > 3 && len(trimmed) < 50 && isAllUpper(trimmed) {
		return true
	}

	return false
}

// isAllUpper reports whether the line contains letters and none of them
// are lowercase.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// findAbstract scans for an "Abstract" marker and returns the following
// paragraph when it is reasonably sized.
func findAbstract(text string) string {
	match := abstractPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	abstract := strings.TrimSpace(match[1])
	if len(abstract) > 50 && len(abstract) < 2000 {
		return abstract
	}
	return ""
}
