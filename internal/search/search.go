// Package search merges exact keyword matches from the paper store with
// semantically similar papers from the vector index.
package search

import (
	"context"
	"errors"
	"fmt"

	"paperdesk/internal/paper"
	"paperdesk/internal/vector"
)

// Searcher runs combined keyword and semantic search.
type Searcher struct {
	papers   *paper.Store
	semantic *vector.Service
}

// NewSearcher creates a combined searcher.
func NewSearcher(papers *paper.Store, semantic *vector.Service) *Searcher {
	return &Searcher{papers: papers, semantic: semantic}
}

// Result is one search hit with its origin.
type Result struct {
	Paper  paper.Paper `json:"paper"`
	Source string      `json:"source"` // "keyword" or "semantic"
}

// Search returns up to limit papers for the query. Keyword matches come
// first; semantic matches fill the remainder, skipping papers already
// found by keyword. Semantic IDs that no longer resolve in the paper
// store are dropped silently: deletion does not cascade to the vector
// index, so orphans are expected.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if query == "" || limit <= 0 {
		return nil, nil
	}

	keyword, err := s.papers.SearchKeyword(query, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	results := make([]Result, 0, limit)
	seen := make(map[int64]bool)
	for _, p := range keyword {
		results = append(results, Result{Paper: p, Source: "keyword"})
		seen[p.ID] = true
	}

	if len(results) >= limit {
		return results[:limit], nil
	}

	for _, id := range s.semantic.Search(ctx, query, limit) {
		if seen[id] {
			continue
		}
		p, err := s.papers.Get(id)
		if err != nil {
			if errors.Is(err, paper.ErrNotFound) {
				continue // orphaned embedding record
			}
			return nil, fmt.Errorf("hydrating paper %d: %w", id, err)
		}
		results = append(results, Result{Paper: *p, Source: "semantic"})
		seen[id] = true
		if len(results) == limit {
			break
		}
	}

	return results, nil
}
