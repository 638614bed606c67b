package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/oluyemi-1/plagiarism-backend/internal/cache"
	"github.com/oluyemi-1/plagiarism-backend/internal/corpus"
	"github.com/oluyemi-1/plagiarism-backend/internal/engine"
	"github.com/oluyemi-1/plagiarism-backend/internal/llm"
	"github.com/oluyemi-1/plagiarism-backend/internal/model"
	"github.com/oluyemi-1/plagiarism-backend/internal/search"
)

// app bundles the wired pipeline for one command invocation
type app struct {
	cfg         *model.Config
	analyzer    *engine.Analyzer
	coordinator *search.Coordinator
}

// loadConfig resolves the effective configuration: defaults, then config
// file, then PLAGIARISM_* environment, then flags already bound to viper.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	return cfg, nil
}

// buildApp wires corpus, providers, cache and analyzer from the config
func buildApp(cfg *model.Config) (*app, error) {
	matcher, err := loadCorpus(cfg.CorpusFile)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{}

	var coordinator *search.Coordinator
	if cfg.Search.Enabled {
		providers, err := search.NewProviders(cfg)
		if err != nil {
			return nil, err
		}

		var c cache.Cache
		ttl := cfg.Cache.TTL
		if cfg.Cache.Enabled {
			if ttl <= 0 {
				ttl = time.Hour
			}
			c = cache.NewMemoryCache(ttl, 10*time.Minute)
		}

		coordinator = search.NewCoordinator(providers, c, cfg.Search, ttl)
		opts = append(opts, engine.WithRetriever(coordinator))
	}

	if cfg.LLM.APIKey != "" {
		opts = append(opts, engine.WithSummarizer(llm.NewSummarizer(cfg.LLM)))
	}

	return &app{
		cfg:         cfg,
		analyzer:    engine.NewAnalyzer(matcher, cfg.Analysis, opts...),
		coordinator: coordinator,
	}, nil
}

func loadCorpus(path string) (*corpus.Matcher, error) {
	if path == "" {
		return corpus.Default(), nil
	}
	matcher, err := corpus.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load corpus %s: %w", path, err)
	}
	return matcher, nil
}
