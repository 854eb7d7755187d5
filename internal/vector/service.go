package vector

import (
	"context"

	"paperdesk/internal/embedding"
)

// Service binds the encoder, store, and ranker behind the two operations
// the rest of the system uses: Index on ingestion and Search on query.
//
// Nothing raised inside the core crosses this boundary. Failures become
// a false return from Index or an empty result from Search, so semantic
// search silently contributes nothing when degraded and keyword search
// keeps the system usable.
type Service struct {
	encoder *embedding.Encoder
	store   *Store
}

// NewService creates the semantic search service. The encoder's
// availability was fixed at its construction and is never re-probed.
func NewService(encoder *embedding.Encoder, store *Store) *Service {
	return &Service{encoder: encoder, store: store}
}

// Available reports whether semantic indexing and search can run.
func (s *Service) Available() bool {
	return s.encoder.Available()
}

// Store exposes the backing store for status reporting.
func (s *Service) Store() *Store {
	return s.store
}

// ModelName reports the active embedding model, or "" when unavailable.
func (s *Service) ModelName() string {
	return s.encoder.ModelName()
}

// Index encodes a paper's title and sampled content and upserts the pair.
// Indexing is best-effort enrichment: it reports false when the encoder
// is unavailable or storage fails, and callers must not treat that as
// fatal to the paper itself.
func (s *Service) Index(ctx context.Context, paperID int64, title, content string) bool {
	if !s.encoder.Available() {
		return false
	}

	titleVec := s.encoder.Encode(ctx, title)
	contentVec := s.encoder.Encode(ctx, SampleContent(content))

	if err := s.store.Upsert(paperID, titleVec, contentVec); err != nil {
		return false
	}
	return true
}

// Search returns up to limit paper IDs ranked by semantic similarity to
// the query, best first. It returns nil when the encoder is unavailable,
// the store is empty or unreadable, or limit is not positive. Callers
// hydrate the IDs against the paper store and drop any that no longer
// resolve.
func (s *Service) Search(ctx context.Context, query string, limit int) []int64 {
	if !s.encoder.Available() || limit <= 0 {
		return nil
	}

	queryVec := s.encoder.Encode(ctx, query)
	if queryVec == nil {
		return nil
	}

	records, err := s.store.All()
	if err != nil {
		return nil
	}

	return Rank(queryVec, records, limit)
}
