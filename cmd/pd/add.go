package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"paperdesk/internal/extract"
	"paperdesk/internal/paper"
	"paperdesk/internal/report"
)

var (
	addTitle    string
	addAuthors  string
	addURL      string
	addTags     []string
	addNoLLM    bool
	addMaxPages int
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addTitle, "title", "", "Paper title (extracted from the PDF if omitted)")
	addCmd.Flags().StringVar(&addAuthors, "authors", "", "Author list")
	addCmd.Flags().StringVar(&addURL, "url", "", "Source URL")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "Tags (comma-separated; suggested by the LLM if omitted)")
	addCmd.Flags().BoolVar(&addNoLLM, "no-llm", false, "Skip LLM summarization and tagging")
	addCmd.Flags().IntVar(&addMaxPages, "max-pages", 0, "Maximum PDF pages to read (0 = all)")
}

// AddResponse is the response for the add command.
type AddResponse struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags,omitempty"`
	Summarized bool     `json:"summarized"`
	Indexed    bool     `json:"indexed"`
	Report     string   `json:"report,omitempty"`
}

var addCmd = &cobra.Command{
	Use:   "add <pdf>",
	Short: "Ingest a PDF into the library",
	Long: `Extract text from a PDF, optionally summarize and tag it with an LLM,
store it in the library, and index it for semantic search.

Summarization needs OPENAI_API_KEY; semantic indexing needs a running
embedding backend. Both are best-effort: the paper is stored either way.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	pdfPath := args[0]

	lib := openLibrary(ctx)
	defer lib.Close()

	doc, err := extract.PDF(pdfPath, addMaxPages)
	if err != nil {
		exitWithError(ExitDataError, "extracting %s: %v", pdfPath, err)
	}

	p := &paper.Paper{
		Title:    addTitle,
		Authors:  addAuthors,
		URL:      addURL,
		FilePath: pdfPath,
		Content:  doc.Text,
		Sections: doc.Sections,
		Tags:     addTags,
	}

	summarized := enrichWithLLM(ctx, lib, p, doc)

	if p.Title == "" {
		p.Title = strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	}

	if p.Summary != "" {
		if name, err := report.Write(lib.cfg.OutputDir(), p); err == nil {
			p.OutputPath = name
		} else {
			warn("writing summary report: %v", err)
		}
	}

	if _, err := lib.papers.Save(p); err != nil {
		exitWithError(ExitError, "saving paper: %v", err)
	}

	indexed := lib.semantic.Index(ctx, p.ID, p.Title, indexText(p))
	if !indexed {
		warn("semantic indexing unavailable; paper stored without embeddings")
	}

	resp := AddResponse{
		ID:         p.ID,
		Title:      p.Title,
		Tags:       p.Tags,
		Summarized: summarized,
		Indexed:    indexed,
		Report:     p.OutputPath,
	}
	if humanOutput {
		outputHuman("Added paper %d: %s\n", resp.ID, resp.Title)
		if len(resp.Tags) > 0 {
			outputHuman("Tags: %s\n", strings.Join(resp.Tags, ", "))
		}
		return nil
	}
	return outputJSON(resp)
}

// enrichWithLLM fills metadata, summary, and tags from the LLM when a
// client is configured. Every step is best-effort.
func enrichWithLLM(ctx context.Context, lib *library, p *paper.Paper, doc *extract.Document) bool {
	if addNoLLM {
		return false
	}
	client := newSummarizer(lib.cfg)
	if client == nil {
		warn("OPENAI_API_KEY not set; skipping summarization")
		return false
	}

	if p.Title == "" || p.Authors == "" {
		firstPage := clipText(doc.Text, 2000)
		if meta, err := client.ExtractMetadata(ctx, firstPage); err == nil {
			if p.Title == "" {
				p.Title = meta.Title
			}
			if p.Authors == "" {
				p.Authors = meta.Authors
			}
			if p.Publication == "" {
				p.Publication = meta.Publication
			}
			if p.PublicationDate == "" {
				p.PublicationDate = meta.Date
			}
		} else {
			warn("metadata extraction failed: %v", err)
		}
	}

	summarized := false
	if summary, err := client.Summarize(ctx, doc.Text); err == nil {
		p.Summary = summary
		summarized = true
	} else {
		warn("summarization failed: %v", err)
	}

	if len(p.Tags) == 0 {
		abstract := doc.Abstract
		if abstract == "" {
			abstract = clipText(doc.Text, 1000)
		}
		if tags, err := client.SuggestTags(ctx, p.Title, abstract); err == nil {
			p.Tags = tags
		} else {
			warn("tag suggestion failed: %v", err)
		}
	}

	return summarized
}
