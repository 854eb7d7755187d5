package paper

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a paper ID does not resolve.
var ErrNotFound = errors.New("paper not found")

// Store wraps the SQLite database holding papers and tags.
type Store struct {
	db *sql.DB
}

// selectPaperFields is the standard field list for SELECT queries.
const selectPaperFields = `id, title, authors, publication, publication_date,
	url, file_path, summary, content, sections_json, processed_date, output_path`

// Open opens or creates the paper database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			authors TEXT,
			publication TEXT,
			publication_date TEXT,
			url TEXT,
			file_path TEXT,
			summary TEXT,
			content TEXT,
			sections_json TEXT,
			processed_date TEXT NOT NULL,
			output_path TEXT
		);

		CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS paper_tags (
			paper_id INTEGER,
			tag_id INTEGER,
			PRIMARY KEY (paper_id, tag_id),
			FOREIGN KEY (paper_id) REFERENCES papers(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS collections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			created_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS collection_papers (
			collection_id INTEGER,
			paper_id INTEGER,
			read_status INTEGER DEFAULT 0,
			PRIMARY KEY (collection_id, paper_id),
			FOREIGN KEY (collection_id) REFERENCES collections(id) ON DELETE CASCADE,
			FOREIGN KEY (paper_id) REFERENCES papers(id) ON DELETE CASCADE
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Save inserts a new paper or updates an existing one (non-zero ID),
// synchronizing its tags. Returns the paper's ID.
func (s *Store) Save(p *Paper) (int64, error) {
	if p.ProcessedDate.IsZero() {
		p.ProcessedDate = time.Now()
	}

	sectionsJSON, err := marshalSections(p.Sections)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if p.ID == 0 {
		res, err := tx.Exec(`
			INSERT INTO papers (title, authors, publication, publication_date,
				url, file_path, summary, content, sections_json, processed_date, output_path)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.Title, p.Authors, p.Publication, p.PublicationDate,
			p.URL, p.FilePath, p.Summary, p.Content, sectionsJSON,
			p.ProcessedDate.Format(time.RFC3339), p.OutputPath)
		if err != nil {
			return 0, fmt.Errorf("inserting paper: %w", err)
		}
		p.ID, err = res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("getting paper ID: %w", err)
		}
	} else {
		res, err := tx.Exec(`
			UPDATE papers SET title = ?, authors = ?, publication = ?, publication_date = ?,
				url = ?, file_path = ?, summary = ?, content = ?, sections_json = ?,
				processed_date = ?, output_path = ?
			WHERE id = ?
		`, p.Title, p.Authors, p.Publication, p.PublicationDate,
			p.URL, p.FilePath, p.Summary, p.Content, sectionsJSON,
			p.ProcessedDate.Format(time.RFC3339), p.OutputPath, p.ID)
		if err != nil {
			return 0, fmt.Errorf("updating paper %d: %w", p.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("checking update: %w", err)
		}
		if n == 0 {
			return 0, ErrNotFound
		}
	}

	if err := saveTags(tx, p.ID, p.Tags); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing paper: %w", err)
	}
	return p.ID, nil
}

// saveTags replaces the paper's tag links with the given set, creating
// tag rows as needed.
func saveTags(tx *sql.Tx, paperID int64, tags []string) error {
	if _, err := tx.Exec("DELETE FROM paper_tags WHERE paper_id = ?", paperID); err != nil {
		return fmt.Errorf("clearing tags for paper %d: %w", paperID, err)
	}

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
			return fmt.Errorf("inserting tag %q: %w", tag, err)
		}
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO paper_tags (paper_id, tag_id)
			SELECT ?, id FROM tags WHERE name = ?
		`, paperID, tag); err != nil {
			return fmt.Errorf("linking tag %q: %w", tag, err)
		}
	}
	return nil
}

// Get returns the paper with the given ID, or ErrNotFound.
func (s *Store) Get(id int64) (*Paper, error) {
	row := s.db.QueryRow("SELECT "+selectPaperFields+" FROM papers WHERE id = ?", id)
	p, err := scanPaper(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.Tags, err = s.tagsForPaper(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListOptions filters and pages List results.
type ListOptions struct {
	Limit  int
	Offset int
	Tag    string // only papers carrying this tag, when non-empty
}

// List returns papers ordered by processed date, newest first.
func (s *Store) List(opts ListOptions) ([]Paper, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	var rows *sql.Rows
	var err error
	if opts.Tag != "" {
		rows, err = s.db.Query(`
			SELECT `+qualify(selectPaperFields, "p")+`
			FROM papers p
			JOIN paper_tags pt ON p.id = pt.paper_id
			JOIN tags t ON pt.tag_id = t.id
			WHERE t.name = ?
			ORDER BY p.processed_date DESC
			LIMIT ? OFFSET ?
		`, strings.ToLower(opts.Tag), opts.Limit, opts.Offset)
	} else {
		rows, err = s.db.Query(`
			SELECT `+selectPaperFields+`
			FROM papers
			ORDER BY processed_date DESC
			LIMIT ? OFFSET ?
		`, opts.Limit, opts.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}

	return s.collectPapers(rows)
}

// SearchKeyword finds papers whose title, authors, summary, content, or
// tag names contain the query as a substring, newest first. Exact-match
// indexing beyond this is out of scope; LIKE on the relational store is
// the keyword side of search.
func (s *Store) SearchKeyword(query string, limit int) ([]Paper, error) {
	if limit <= 0 {
		limit = 100
	}
	term := "%" + query + "%"

	rows, err := s.db.Query(`
		SELECT DISTINCT `+qualify(selectPaperFields, "p")+`
		FROM papers p
		LEFT JOIN paper_tags pt ON p.id = pt.paper_id
		LEFT JOIN tags t ON pt.tag_id = t.id
		WHERE
			p.title LIKE ? OR
			p.authors LIKE ? OR
			p.summary LIKE ? OR
			p.content LIKE ? OR
			t.name LIKE ?
		ORDER BY p.processed_date DESC
		LIMIT ?
	`, term, term, term, term, term, limit)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}

	return s.collectPapers(rows)
}

// Tags returns all tag names in use, sorted.
func (s *Store) Tags() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("reading tag: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// Delete removes a paper and its tag links. Embedding records are left
// to orphan; search hydration drops IDs that no longer resolve.
func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM papers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting paper %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored papers.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanPaper.
type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(row scanner) (*Paper, error) {
	var p Paper
	var authors, publication, pubDate, url, filePath sql.NullString
	var summary, content, sectionsJSON, outputPath sql.NullString
	var processedDate string

	err := row.Scan(&p.ID, &p.Title, &authors, &publication, &pubDate,
		&url, &filePath, &summary, &content, &sectionsJSON, &processedDate, &outputPath)
	if err != nil {
		return nil, err
	}

	p.Authors = authors.String
	p.Publication = publication.String
	p.PublicationDate = pubDate.String
	p.URL = url.String
	p.FilePath = filePath.String
	p.Summary = summary.String
	p.Content = content.String
	p.OutputPath = outputPath.String

	if sectionsJSON.String != "" {
		if err := json.Unmarshal([]byte(sectionsJSON.String), &p.Sections); err != nil {
			return nil, fmt.Errorf("parsing sections for paper %d: %w", p.ID, err)
		}
	}
	if p.ProcessedDate, err = time.Parse(time.RFC3339, processedDate); err != nil {
		return nil, fmt.Errorf("parsing processed date for paper %d: %w", p.ID, err)
	}

	return &p, nil
}

func (s *Store) collectPapers(rows *sql.Rows) ([]Paper, error) {
	defer rows.Close()

	var papers []Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, fmt.Errorf("reading paper row: %w", err)
		}
		papers = append(papers, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating papers: %w", err)
	}

	for i := range papers {
		tags, err := s.tagsForPaper(papers[i].ID)
		if err != nil {
			return nil, err
		}
		papers[i].Tags = tags
	}
	return papers, nil
}

func (s *Store) tagsForPaper(paperID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT t.name FROM tags t
		JOIN paper_tags pt ON t.id = pt.tag_id
		WHERE pt.paper_id = ?
		ORDER BY t.name
	`, paperID)
	if err != nil {
		return nil, fmt.Errorf("reading tags for paper %d: %w", paperID, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("reading tag row: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func marshalSections(sections map[string]string) (string, error) {
	if len(sections) == 0 {
		return "", nil
	}
	data, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("marshaling sections: %w", err)
	}
	return string(data), nil
}

// qualify prefixes each field in a comma-separated list with a table
// alias for joined queries.
func qualify(fields, alias string) string {
	parts := strings.Split(fields, ",")
	for i, f := range parts {
		parts[i] = alias + "." + strings.TrimSpace(f)
	}
	return strings.Join(parts, ", ")
}
