package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"paperdesk/internal/paper"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "spaces become dashes",
			title: "Attention Is All You Need",
			want:  "Attention-Is-All-You-Need",
		},
		{
			name:  "special characters stripped",
			title: "BERT: Pre-training of Deep Bidirectional Transformers!",
			want:  "BERT-Pre-training-of-Deep-Bidirectional-Transformers",
		},
		{
			name:  "long title bounded",
			title: strings.Repeat("word ", 50),
			want:  "", // checked by length below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filename(tt.title)
			if tt.want != "" && got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if len(got) > maxFilenameLen {
				t.Errorf("Filename length = %d, want at most %d", len(got), maxFilenameLen)
			}
		})
	}

	t.Run("empty title falls back to timestamp", func(t *testing.T) {
		got := Filename("")
		if !strings.HasPrefix(got, "paper-summary-") {
			t.Errorf("Filename(\"\") = %q, want timestamped fallback", got)
		}
	})

	t.Run("fully stripped title falls back", func(t *testing.T) {
		got := Filename("!!!")
		if !strings.HasPrefix(got, "paper-summary-") {
			t.Errorf("Filename(\"!!!\") = %q, want timestamped fallback", got)
		}
	})
}

func TestRender(t *testing.T) {
	p := &paper.Paper{
		Title:           "Attention Is All You Need",
		Authors:         "Vaswani et al.",
		Publication:     "NeurIPS",
		PublicationDate: "2017",
		URL:             "https://arxiv.org/abs/1706.03762",
		Summary:         "## Summary\nIntroduces the transformer.",
	}

	got := Render(p)

	for _, want := range []string{
		"# Attention Is All You Need",
		"**Authors:** Vaswani et al.",
		"**Publication:** NeurIPS, 2017",
		"**Source:** [https://arxiv.org/abs/1706.03762](https://arxiv.org/abs/1706.03762)",
		"---",
		"Introduces the transformer.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestRender_SparseMetadata(t *testing.T) {
	got := Render(&paper.Paper{Summary: "Just a summary."})

	if !strings.Contains(got, "# Untitled Paper") {
		t.Errorf("missing fallback title:\n%s", got)
	}
	if strings.Contains(got, "**Authors:**") || strings.Contains(got, "**Publication:**") {
		t.Errorf("empty metadata fields should be omitted:\n%s", got)
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	p := &paper.Paper{Title: "A Paper", Summary: "The summary."}

	name, err := Write(dir, p)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if name != "A-Paper.md" {
		t.Errorf("name = %q, want A-Paper.md", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(data), "The summary.") {
		t.Errorf("report content = %q", data)
	}
}
