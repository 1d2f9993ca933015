package model

import "time"

// Config is the full engine configuration. Loaded from flags, CLARIX_*
// environment variables, and ~/.clarix/config.yaml (in that priority order).
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Server   ServerConfig   `yaml:"server"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	HTTP     HTTPConfig     `yaml:"http"`
	Cache    CacheConfig    `yaml:"cache"`
}

// LLMConfig selects and tunes the text-generation provider
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "azure", "ollama"
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Timeout     int     `yaml:"timeout"` // seconds, per attempt
	Temperature float32 `yaml:"temperature"`

	// MaxAttempts is the total retry budget per gateway call
	MaxAttempts int `yaml:"max_attempts"`

	// RequestsPerSecond throttles outbound gateway calls (0 = unlimited)
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// ServerConfig configures the HTTP service shell
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	InternalToken  string `yaml:"internal_token,omitempty"` // shared secret; empty = open access (dev)
	AllowedOrigins string `yaml:"allowed_origins"`          // comma-separated CORS origins
}

// PipelineConfig tunes the verification pipeline itself
type PipelineConfig struct {
	MaxClaims        int `yaml:"max_claims"`
	MaxContentLength int `yaml:"max_content_length"`
	MaxGuidanceItems int `yaml:"max_guidance_items"`
}

// HTTPConfig configures the article fetcher used for URL inputs
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// CacheConfig configures the server-side result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "openai",
			Model:             "gpt-4o",
			Timeout:           60,
			Temperature:       0.2,
			MaxAttempts:       3,
			RequestsPerSecond: 0,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8000,
			AllowedOrigins: "*",
		},
		Pipeline: PipelineConfig{
			MaxClaims:        10,
			MaxContentLength: 50_000,
			MaxGuidanceItems: 4,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Clarix/0.2 (+https://github.com/ParthGupta1304/CLARIX)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
	}
}
