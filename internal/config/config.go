// Package config handles paperdesk configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the per-user paperdesk directory under $HOME.
	ConfigDir = ".paperdesk"

	// ConfigFile is the configuration file name within ConfigDir.
	ConfigFile = "config.yaml"

	// PapersDBFile holds paper metadata, text, and tags.
	PapersDBFile = "papers.db"

	// VectorsDBFile holds embedding records, kept separate from the
	// paper database so the semantic index can be rebuilt or backed up
	// independently.
	VectorsDBFile = "vectors.db"

	// OutputDirName holds generated Markdown summary reports.
	OutputDirName = "output"
)

// Config is the paperdesk configuration, stored as YAML.
type Config struct {
	DataDir   string          `yaml:"data_dir,omitempty"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	API       APIConfig       `yaml:"api"`
}

// EmbeddingConfig selects and tunes the embedding backend.
type EmbeddingConfig struct {
	Backend    string `yaml:"backend"` // "ollama" or "openai"
	OllamaURL  string `yaml:"ollama_url,omitempty"`
	Model      string `yaml:"model,omitempty"`
	Dimensions int    `yaml:"dimensions,omitempty"`
}

// LLMConfig tunes the summarization client.
type LLMConfig struct {
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// APIConfig tunes the REST API server.
type APIConfig struct {
	Listen string `yaml:"listen,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Backend: "ollama",
		},
		API: APIConfig{
			Listen: "127.0.0.1:8642",
		},
	}
}

// DefaultPath returns the path to the per-user config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

// Load reads the configuration at path, applying defaults for anything
// unset. A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.DataDir = filepath.Dir(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	if cfg.Embedding.Backend == "" {
		cfg.Embedding.Backend = "ollama"
	}
	if cfg.API.Listen == "" {
		cfg.API.Listen = Default().API.Listen
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// PapersDBPath returns the path to the paper database.
func (c *Config) PapersDBPath() string {
	return filepath.Join(c.DataDir, PapersDBFile)
}

// VectorsDBPath returns the path to the embedding database.
func (c *Config) VectorsDBPath() string {
	return filepath.Join(c.DataDir, VectorsDBFile)
}

// OutputDir returns the directory for generated summary reports.
func (c *Config) OutputDir() string {
	return filepath.Join(c.DataDir, OutputDirName)
}

// EnsureDataDir creates the data directory if needed.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}
