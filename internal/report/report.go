// Package report renders Markdown summary reports for processed papers.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"paperdesk/internal/paper"
)

// Filename sanitization: strip anything outside word characters, spaces,
// and dashes, then collapse runs to single dashes.
var (
	nonWord  = regexp.MustCompile(`[^\w\s-]`)
	dashRuns = regexp.MustCompile(`[-\s]+`)
)

// maxFilenameLen bounds the title-derived part of a report file name.
const maxFilenameLen = 100

// Write renders a Markdown report for the paper into dir and returns the
// file name. The paper record stores the bare name, not the full path,
// so the output directory can move without breaking stored papers.
func Write(dir string, p *paper.Paper) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	name := Filename(p.Title) + ".md"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(Render(p)), 0644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", name, err)
	}
	return name, nil
}

// Filename derives a report file name (without extension) from a paper
// title. An empty or fully-stripped title falls back to a timestamped
// name.
func Filename(title string) string {
	name := nonWord.ReplaceAllString(title, "")
	name = dashRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-_")
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}
	if name == "" {
		name = "paper-summary-" + time.Now().Format("2006-01-02-15-04-05")
	}
	return name
}

// Render formats the report body: a metadata header, a divider, then the
// paper's summary.
func Render(p *paper.Paper) string {
	var b strings.Builder

	title := p.Title
	if title == "" {
		title = "Untitled Paper"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if p.Authors != "" {
		fmt.Fprintf(&b, "**Authors:** %s\n\n", p.Authors)
	}
	if p.Publication != "" || p.PublicationDate != "" {
		var pub []string
		if p.Publication != "" {
			pub = append(pub, p.Publication)
		}
		if p.PublicationDate != "" {
			pub = append(pub, p.PublicationDate)
		}
		fmt.Fprintf(&b, "**Publication:** %s\n\n", strings.Join(pub, ", "))
	}
	if p.URL != "" {
		fmt.Fprintf(&b, "**Source:** [%s](%s)\n\n", p.URL, p.URL)
	}

	b.WriteString("---\n\n")
	b.WriteString(p.Summary)
	b.WriteString("\n")
	return b.String()
}
