package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	LLM         LLMConfig         `mapstructure:"llm" yaml:"llm"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	HTTP        HTTPConfig        `mapstructure:"http" yaml:"http"`
}

// LLMConfig selects and tunes the language model provider
type LLMConfig struct {
	Provider       string  `mapstructure:"provider" yaml:"provider"` // gemini, openai, anthropic, ollama, "" (disabled)
	Model          string  `mapstructure:"model" yaml:"model"`
	APIKey         string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout        int     `mapstructure:"timeout" yaml:"timeout"` // seconds
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	RequestsPerMin float64 `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// CacheConfig controls reuse of generated reports for identical input
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Dir     string        `mapstructure:"dir" yaml:"dir"` // Empty keeps the cache in memory only
}

// OutputConfig controls how reports are written
type OutputConfig struct {
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
	Raw     bool `mapstructure:"raw" yaml:"raw"` // Print markdown without terminal styling
	Width   int  `mapstructure:"width" yaml:"width"`
}

// ServerConfig configures the HTTP service
type ServerConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	Metrics      bool          `mapstructure:"metrics" yaml:"metrics"` // Serve Prometheus metrics on /metrics
}

// ConcurrencyConfig limits parallel work in batch mode
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// HTTPConfig holds outbound proxy settings for provider clients
type HTTPConfig struct {
	HTTPProxy  string `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy string `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
	NoProxy    string `mapstructure:"no_proxy" yaml:"no_proxy,omitempty"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "gemini",
			Model:          "gemini-3-flash-preview",
			Timeout:        60,
			MaxTokens:      2048,
			RequestsPerMin: 30,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Output: OutputConfig{
			Width: 80,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
			MaxBodyBytes: 1 << 20,
			Metrics:      true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
