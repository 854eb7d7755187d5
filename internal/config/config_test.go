package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Embedding.Backend != "ollama" {
		t.Errorf("Backend = %q, want ollama", cfg.Embedding.Backend)
	}
	if cfg.API.Listen == "" {
		t.Error("API listen address should default")
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_dir: /var/lib/paperdesk
embedding:
  backend: openai
  model: text-embedding-3-large
llm:
  model: gpt-4o
api:
  listen: 0.0.0.0:9000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DataDir != "/var/lib/paperdesk" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Embedding.Backend != "openai" {
		t.Errorf("Backend = %q", cfg.Embedding.Backend)
	}
	if cfg.Embedding.Model != "text-embedding-3-large" {
		t.Errorf("Model = %q", cfg.Embedding.Model)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("LLM model = %q", cfg.LLM.Model)
	}
	if cfg.API.Listen != "0.0.0.0:9000" {
		t.Errorf("Listen = %q", cfg.API.Listen)
	}

	if cfg.PapersDBPath() != "/var/lib/paperdesk/papers.db" {
		t.Errorf("PapersDBPath = %q", cfg.PapersDBPath())
	}
	if cfg.VectorsDBPath() != "/var/lib/paperdesk/vectors.db" {
		t.Errorf("VectorsDBPath = %q", cfg.VectorsDBPath())
	}
	if cfg.OutputDir() != "/var/lib/paperdesk/output" {
		t.Errorf("OutputDir = %q", cfg.OutputDir())
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.DataDir = "/tmp/pd-data"
	cfg.Embedding.Model = "all-minilm:l6-v2"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.DataDir != cfg.DataDir {
		t.Errorf("DataDir = %q, want %q", got.DataDir, cfg.DataDir)
	}
	if got.Embedding.Model != cfg.Embedding.Model {
		t.Errorf("Model = %q, want %q", got.Embedding.Model, cfg.Embedding.Model)
	}
}
