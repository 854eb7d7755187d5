package paper

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Collection is a named reading list of papers. Membership carries a
// per-paper read flag scoped to the collection, so the same paper can be
// read in one list and unread in another.
type Collection struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Papers      []CollectionPaper `json:"papers"`
}

// CollectionPaper is one paper's membership in a collection.
type CollectionPaper struct {
	PaperID int64 `json:"paper_id"`
	Read    bool  `json:"read"`
}

// SaveCollection inserts a new collection or updates the name and
// description of an existing one (non-zero ID). Membership is managed
// through AddToCollection and RemoveFromCollection so that updating a
// collection's metadata never resets per-paper read flags. Returns the
// collection's ID.
func (s *Store) SaveCollection(c *Collection) (int64, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	if c.ID == 0 {
		res, err := s.db.Exec(`
			INSERT INTO collections (name, description, created_at)
			VALUES (?, ?, ?)
		`, c.Name, c.Description, c.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return 0, fmt.Errorf("inserting collection: %w", err)
		}
		c.ID, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("getting collection ID: %w", err)
		}
		return c.ID, nil
	}

	res, err := s.db.Exec(`
		UPDATE collections SET name = ?, description = ? WHERE id = ?
	`, c.Name, c.Description, c.ID)
	if err != nil {
		return 0, fmt.Errorf("updating collection %d: %w", c.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking collection update: %w", err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return c.ID, nil
}

// GetCollection returns the collection with the given ID, including its
// membership, or ErrNotFound.
func (s *Store) GetCollection(id int64) (*Collection, error) {
	row := s.db.QueryRow("SELECT id, name, description, created_at FROM collections WHERE id = ?", id)
	c, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if c.Papers, err = s.collectionPapers(c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCollections returns all collections with their membership, ordered
// by name.
func (s *Store) ListCollections() ([]Collection, error) {
	rows, err := s.db.Query("SELECT id, name, description, created_at FROM collections ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var collections []Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("reading collection row: %w", err)
		}
		collections = append(collections, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}

	for i := range collections {
		papers, err := s.collectionPapers(collections[i].ID)
		if err != nil {
			return nil, err
		}
		collections[i].Papers = papers
	}
	return collections, nil
}

// DeleteCollection removes a collection. Membership rows cascade; the
// papers themselves are untouched.
func (s *Store) DeleteCollection(id int64) error {
	res, err := s.db.Exec("DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting collection %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking collection delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddToCollection adds a paper to a collection, unread. Adding a paper
// that is already a member succeeds without resetting its read flag.
// Returns ErrNotFound when either the collection or the paper does not
// exist.
func (s *Store) AddToCollection(collectionID, paperID int64) error {
	if err := s.exists("collections", collectionID); err != nil {
		return err
	}
	if err := s.exists("papers", paperID); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO collection_papers (collection_id, paper_id, read_status)
		VALUES (?, ?, 0)
	`, collectionID, paperID)
	if err != nil {
		return fmt.Errorf("adding paper %d to collection %d: %w", paperID, collectionID, err)
	}
	return nil
}

// RemoveFromCollection removes a paper from a collection, or ErrNotFound
// when it was not a member.
func (s *Store) RemoveFromCollection(collectionID, paperID int64) error {
	res, err := s.db.Exec(`
		DELETE FROM collection_papers WHERE collection_id = ? AND paper_id = ?
	`, collectionID, paperID)
	if err != nil {
		return fmt.Errorf("removing paper %d from collection %d: %w", paperID, collectionID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking membership delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetReadStatus marks a paper read or unread within a collection, or
// ErrNotFound when the paper is not a member.
func (s *Store) SetReadStatus(collectionID, paperID int64, read bool) error {
	res, err := s.db.Exec(`
		UPDATE collection_papers SET read_status = ?
		WHERE collection_id = ? AND paper_id = ?
	`, boolToInt(read), collectionID, paperID)
	if err != nil {
		return fmt.Errorf("updating read status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking read status update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) collectionPapers(collectionID int64) ([]CollectionPaper, error) {
	rows, err := s.db.Query(`
		SELECT paper_id, read_status FROM collection_papers
		WHERE collection_id = ?
		ORDER BY paper_id
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("reading collection %d membership: %w", collectionID, err)
	}
	defer rows.Close()

	var papers []CollectionPaper
	for rows.Next() {
		var cp CollectionPaper
		var read int
		if err := rows.Scan(&cp.PaperID, &read); err != nil {
			return nil, fmt.Errorf("reading membership row: %w", err)
		}
		cp.Read = read != 0
		papers = append(papers, cp)
	}
	return papers, rows.Err()
}

func scanCollection(row scanner) (*Collection, error) {
	var c Collection
	var description sql.NullString
	var createdAt string

	if err := row.Scan(&c.ID, &c.Name, &description, &createdAt); err != nil {
		return nil, err
	}
	c.Description = description.String

	var err error
	if c.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at for collection %d: %w", c.ID, err)
	}
	return &c, nil
}

// exists verifies a row with the given ID is present in table, returning
// ErrNotFound when it is not.
func (s *Store) exists(table string, id int64) error {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE id = ?", id).Scan(&n); err != nil {
		return fmt.Errorf("checking %s for id %d: %w", table, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
