// Package paper provides the relational store for paper metadata, full
// text, and tags.
package paper

import "time"

// Paper is one processed research paper in the library.
type Paper struct {
	ID              int64             `json:"id"`
	Title           string            `json:"title"`
	Authors         string            `json:"authors,omitempty"`
	Publication     string            `json:"publication,omitempty"`
	PublicationDate string            `json:"publication_date,omitempty"`
	URL             string            `json:"url,omitempty"`
	FilePath        string            `json:"file_path,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	Content         string            `json:"content,omitempty"`
	Tags            []string          `json:"tags"`
	Sections        map[string]string `json:"sections,omitempty"`
	ProcessedDate   time.Time         `json:"processed_date"`
	OutputPath      string            `json:"output_path,omitempty"`
}
