package vector

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists one embedding record per paper in its own SQLite file,
// separate from the paper metadata database so the index can be backed up
// or rebuilt independently.
//
// Each operation opens its own connection and closes it before returning.
// The store never assumes exclusive access to the backing file: concurrent
// indexing and queries are safe at the SQLite level, and a scan may or may
// not observe an upsert that races with it. Upserts are atomic per paper.
type Store struct {
	path string
}

// Record is one stored embedding pair. Either vector may be nil when the
// paper had no usable text for that field.
type Record struct {
	PaperID       int64
	TitleVector   []float32
	ContentVector []float32
}

// NewStore creates a store backed by the SQLite file at path. The schema
// is created lazily on first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// open opens a connection and ensures the schema exists.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	schema := `
		CREATE TABLE IF NOT EXISTS embeddings (
			paper_id INTEGER PRIMARY KEY,
			title_vector BLOB,
			content_vector BLOB,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating embeddings schema: %w", err)
	}

	return db, nil
}

// Upsert stores the embedding pair for a paper, replacing any existing
// vectors entirely. created_at is preserved across re-indexing: it tracks
// when the paper was first indexed.
func (s *Store) Upsert(paperID int64, titleVec, contentVec []float32) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
		INSERT INTO embeddings (paper_id, title_vector, content_vector)
		VALUES (?, ?, ?)
		ON CONFLICT(paper_id) DO UPDATE SET
			title_vector = excluded.title_vector,
			content_vector = excluded.content_vector
	`, paperID, encodeVector(titleVec), encodeVector(contentVec))
	if err != nil {
		return fmt.Errorf("upserting embedding for paper %d: %w", paperID, err)
	}

	return nil
}

// All returns every stored record in unspecified order. A record whose
// blob fails to decode is kept with the offending vector nil so one
// corrupt row cannot abort a whole search.
func (s *Store) All() ([]Record, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT paper_id, title_vector, content_vector FROM embeddings")
	if err != nil {
		return nil, fmt.Errorf("scanning embeddings: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var titleBlob, contentBlob []byte
		if err := rows.Scan(&rec.PaperID, &titleBlob, &contentBlob); err != nil {
			return nil, fmt.Errorf("reading embedding row: %w", err)
		}
		rec.TitleVector, _ = decodeVector(titleBlob)
		rec.ContentVector, _ = decodeVector(contentBlob)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	db, err := s.open()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM embeddings").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting embeddings: %w", err)
	}
	return n, nil
}
