package model

import "time"

// Config is the process-wide configuration. It is loaded once at startup
// and never mutated during an analysis run.
type Config struct {
	HTTP        HTTPConfig     `yaml:"http" mapstructure:"http"`
	Analysis    AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Search      SearchConfig   `yaml:"search" mapstructure:"search"`
	Cache       CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Server      ServerConfig   `yaml:"server" mapstructure:"server"`
	LLM         LLMConfig      `yaml:"llm" mapstructure:"llm"`
	CorpusFile  string         `yaml:"corpus_file" mapstructure:"corpus_file"`
}

// HTTPConfig controls outbound provider requests
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBytes  int64         `yaml:"max_bytes" mapstructure:"max_bytes"`
}

// AnalysisConfig controls segmentation and scoring
type AnalysisConfig struct {
	MinWordCount        int     `yaml:"min_word_count" mapstructure:"min_word_count"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// SearchConfig controls the retrieval coordinator
type SearchConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Providers  []string      `yaml:"providers" mapstructure:"providers"`
	BatchSize  int           `yaml:"batch_size" mapstructure:"batch_size"`
	BatchDelay time.Duration `yaml:"batch_delay" mapstructure:"batch_delay"`
	MaxResults int           `yaml:"max_results" mapstructure:"max_results"`
}

// CacheConfig controls provider result caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ServerConfig controls the HTTP API surface
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
}

// LLMConfig controls the optional report summarizer
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "Plagiarism-Backend/1.0 (+https://github.com/oluyemi-1/plagiarism-backend)",
			MaxBytes:  2_000_000,
		},
		Analysis: AnalysisConfig{
			MinWordCount:        10,
			SimilarityThreshold: 0.6,
		},
		Search: SearchConfig{
			Enabled:    true,
			Providers:  []string{"bing", "duckduckgo", "arxiv", "crossref", "semanticscholar", "pubmed"},
			BatchSize:  3,
			BatchDelay: 2 * time.Second,
			MaxResults: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
			MaxUploadBytes: 10 * 1024 * 1024,
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
	}
}
