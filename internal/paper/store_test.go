package paper

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "papers.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndGet(t *testing.T) {
	store := tempStore(t)

	p := &Paper{
		Title:           "Attention Is All You Need",
		Authors:         "Vaswani et al.",
		Publication:     "NeurIPS",
		PublicationDate: "2017-06-12",
		URL:             "https://arxiv.org/abs/1706.03762",
		Summary:         "Introduces the transformer architecture.",
		Content:         "We propose a new simple network architecture, the Transformer...",
		Tags:            []string{"Transformers", "attention"},
		Sections: map[string]string{
			"abstract":     "The dominant sequence transduction models...",
			"introduction": "Recurrent neural networks...",
		},
	}

	id, err := store.Save(p)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Save should assign a non-zero ID")
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != p.Title {
		t.Errorf("Title = %q, want %q", got.Title, p.Title)
	}
	if got.Authors != p.Authors {
		t.Errorf("Authors = %q, want %q", got.Authors, p.Authors)
	}
	// Tags are normalized to lowercase and sorted.
	if len(got.Tags) != 2 || got.Tags[0] != "attention" || got.Tags[1] != "transformers" {
		t.Errorf("Tags = %v, want [attention transformers]", got.Tags)
	}
	if got.Sections["abstract"] != p.Sections["abstract"] {
		t.Errorf("Sections not round-tripped: %v", got.Sections)
	}
	if got.ProcessedDate.IsZero() {
		t.Error("ProcessedDate should be set on save")
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := tempStore(t)

	_, err := store.Get(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(42) error = %v, want ErrNotFound", err)
	}
}

func TestStore_UpdateSyncsTags(t *testing.T) {
	store := tempStore(t)

	p := &Paper{Title: "Paper", Tags: []string{"old", "shared"}}
	id, err := store.Save(p)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p.Tags = []string{"shared", "new"}
	if _, err := store.Save(p); err != nil {
		t.Fatalf("update Save failed: %v", err)
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "new" || got.Tags[1] != "shared" {
		t.Errorf("Tags = %v, want [new shared]", got.Tags)
	}
}

func TestStore_UpdateMissingPaper(t *testing.T) {
	store := tempStore(t)

	p := &Paper{ID: 99, Title: "Ghost"}
	if _, err := store.Save(p); !errors.Is(err, ErrNotFound) {
		t.Errorf("Save of missing ID error = %v, want ErrNotFound", err)
	}
}

func TestStore_List(t *testing.T) {
	store := tempStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.Save(&Paper{
			Title:         "Paper " + string(rune('A'+i)),
			Tags:          []string{"ml"},
			ProcessedDate: base.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
	if _, err := store.Save(&Paper{Title: "Untagged", ProcessedDate: base.AddDate(0, 1, 0)}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Run("newest first", func(t *testing.T) {
		papers, err := store.List(ListOptions{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(papers) != 4 {
			t.Fatalf("got %d papers, want 4", len(papers))
		}
		if papers[0].Title != "Untagged" {
			t.Errorf("first paper = %q, want newest", papers[0].Title)
		}
	})

	t.Run("limit and offset", func(t *testing.T) {
		papers, err := store.List(ListOptions{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(papers) != 2 {
			t.Fatalf("got %d papers, want 2", len(papers))
		}
	})

	t.Run("tag filter", func(t *testing.T) {
		papers, err := store.List(ListOptions{Tag: "ML"})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(papers) != 3 {
			t.Errorf("got %d papers with tag ml, want 3", len(papers))
		}
	})
}

func TestStore_SearchKeyword(t *testing.T) {
	store := tempStore(t)

	papers := []*Paper{
		{Title: "Attention Is All You Need", Content: "transformer architecture", Tags: []string{"deep-learning"}},
		{Title: "Random Forests", Summary: "ensembles of decision trees", Authors: "Breiman"},
		{Title: "A Third Paper", Content: "unrelated"},
	}
	for _, p := range papers {
		if _, err := store.Save(p); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "title substring", query: "Attention", want: 1},
		{name: "content substring", query: "transformer", want: 1},
		{name: "summary substring", query: "decision trees", want: 1},
		{name: "author substring", query: "Breiman", want: 1},
		{name: "tag substring", query: "deep-learning", want: 1},
		{name: "no match", query: "quantum chromodynamics", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.SearchKeyword(tt.query, 10)
			if err != nil {
				t.Fatalf("SearchKeyword failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d results, want %d", len(got), tt.want)
			}
		})
	}

	t.Run("limit respected", func(t *testing.T) {
		got, err := store.SearchKeyword("Paper", 1)
		if err != nil {
			t.Fatalf("SearchKeyword failed: %v", err)
		}
		if len(got) > 1 {
			t.Errorf("got %d results, want at most 1", len(got))
		}
	})
}

func TestStore_TagsAndDelete(t *testing.T) {
	store := tempStore(t)

	id, err := store.Save(&Paper{Title: "Paper", Tags: []string{"nlp", "attention"}})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tags, err := store.Tags()
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	if len(tags) != 2 || tags[0] != "attention" || tags[1] != "nlp" {
		t.Errorf("Tags = %v, want [attention nlp]", tags)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}
