package main

import (
	"context"
	"os"

	"paperdesk/internal/config"
	"paperdesk/internal/embedding"
	"paperdesk/internal/paper"
	"paperdesk/internal/search"
	"paperdesk/internal/summarize"
	"paperdesk/internal/vector"
)

// library bundles the stores and services every command needs.
type library struct {
	cfg      *config.Config
	papers   *paper.Store
	semantic *vector.Service
	searcher *search.Searcher
}

// mustLoadConfig loads the config file or exits with a config error.
func mustLoadConfig() *config.Config {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			exitWithError(ExitConfigError, "locating config: %v", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		exitWithError(ExitConfigError, "preparing data directory: %v", err)
	}
	return cfg
}

// newProvider builds the configured embedding provider. A misconfigured
// or missing backend yields nil, which the encoder treats as
// unavailable: semantic search degrades, nothing fails.
func newProvider(cfg *config.Config) embedding.Provider {
	switch cfg.Embedding.Backend {
	case "openai":
		provider, err := embedding.NewOpenAIProvider(os.Getenv("OPENAI_API_KEY"), "", cfg.Embedding.Model)
		if err != nil {
			return nil
		}
		return provider
	default:
		var opts []embedding.OllamaOption
		if cfg.Embedding.OllamaURL != "" {
			opts = append(opts, embedding.WithBaseURL(cfg.Embedding.OllamaURL))
		}
		if cfg.Embedding.Model != "" {
			opts = append(opts, embedding.WithModel(cfg.Embedding.Model))
		}
		if cfg.Embedding.Dimensions > 0 {
			opts = append(opts, embedding.WithDimensions(cfg.Embedding.Dimensions))
		}
		return embedding.NewOllamaProvider(opts...)
	}
}

// openLibrary opens the stores and probes the embedding provider once.
func openLibrary(ctx context.Context) *library {
	cfg := mustLoadConfig()

	papers, err := paper.Open(cfg.PapersDBPath())
	if err != nil {
		exitWithError(ExitError, "opening paper store: %v", err)
	}

	encoder := embedding.NewEncoder(ctx, newProvider(cfg))
	semantic := vector.NewService(encoder, vector.NewStore(cfg.VectorsDBPath()))

	return &library{
		cfg:      cfg,
		papers:   papers,
		semantic: semantic,
		searcher: search.NewSearcher(papers, semantic),
	}
}

// Close releases the library's resources.
func (l *library) Close() {
	l.papers.Close()
}

// newSummarizer builds the LLM client, or nil when no API key is set.
func newSummarizer(cfg *config.Config) *summarize.Client {
	var opts []summarize.Option
	if cfg.LLM.Model != "" {
		opts = append(opts, summarize.WithModel(cfg.LLM.Model))
	}
	client, err := summarize.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLM.BaseURL, opts...)
	if err != nil {
		return nil
	}
	return client
}

// indexText picks the text embedded as a paper's content: the LLM
// summary when present, otherwise the extracted full text.
func indexText(p *paper.Paper) string {
	if p.Summary != "" {
		return p.Summary
	}
	return p.Content
}
