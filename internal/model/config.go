package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Authority   AuthorityConfig   `yaml:"authority"`
	Scholar     ScholarConfig     `yaml:"scholar"`
	LLM         LLMConfig         `yaml:"llm"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Cluster     ClusterConfig     `yaml:"cluster"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls outbound document fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	RatePerHost  float64       `yaml:"rate_per_host"` // requests/sec per domain
	RateBurst    int           `yaml:"rate_burst"`
}

// CacheConfig controls the layered domain-trust and fetch caches
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// AuthorityConfig controls the tiered source-authority resolver
type AuthorityConfig struct {
	// PageRankURL is the popularity-index endpoint (0-10 domain rank)
	PageRankURL string        `yaml:"pagerank_url"`
	PageRankKey string        `yaml:"pagerank_key"`
	Timeout     time.Duration `yaml:"timeout"`
	// Overrides extends the built-in static table (checked after it)
	Overrides map[string]float64 `yaml:"overrides"`
}

// ScholarConfig controls the bibliometric lookup for research papers
type ScholarConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// LLMConfig holds generative-text provider configuration
type LLMConfig struct {
	Provider  string        `yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// EmbeddingConfig holds the embedding provider configuration
type EmbeddingConfig struct {
	Provider string        `yaml:"provider"` // openai, mock
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ClusterConfig controls semantic claim clustering
type ClusterConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	EmbedWorkers        int     `yaml:"embed_workers"`
}

// ConcurrencyConfig controls worker fan-out
type ConcurrencyConfig struct {
	ScoreWorkers int `yaml:"score_workers"`
	FetchWorkers int `yaml:"fetch_workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Accord/0.1 (+https://github.com/accordhq/accord)",
			MaxBodyBytes: 2_000_000,
			RatePerHost:  2.0,
			RateBurst:    5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.accord/cache at startup
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   30 * 24 * time.Hour,
		},
		Authority: AuthorityConfig{
			PageRankURL: "https://openpagerank.com/api/v1.0/getPageRank",
			Timeout:     8 * time.Second,
		},
		Scholar: ScholarConfig{
			BaseURL: "https://api.semanticscholar.org/graph/v1",
			Timeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default
			Timeout:   30 * time.Second,
			MaxTokens: 1000,
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
			Timeout:  15 * time.Second,
		},
		Cluster: ClusterConfig{
			SimilarityThreshold: 0.82,
			EmbedWorkers:        4,
		},
		Concurrency: ConcurrencyConfig{
			ScoreWorkers: 4,
			FetchWorkers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
