// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholarsynth/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the arXiv search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of papers fetched per topic (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxRetries is the number of retries on throttled responses
	// (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// LLMConfig holds settings for the Groq chat-completion stage.
type LLMConfig struct {
	// Model is the Groq model identifier (e.g. "llama-3.3-70b-versatile").
	Model string `json:"model" yaml:"model"`

	// APIKey is the Groq API key. Resolved at startup from config, the
	// GROQ_API_KEY environment variable, or .secrets/groq-api-key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the Groq endpoint, used by tests.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Temperature is the sampling temperature (default 0.2).
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout is the per-request timeout (default 90s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig holds settings for the web server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists CORS origins permitted to call the API.
	// Empty means same-origin only.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// StoreConfig holds settings for the review history database.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables persistence;
	// reviews then live only in the server's in-memory registry.
	Path string `json:"path" yaml:"path"`
}

// Config groups all stage configurations.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	LLM    LLMConfig    `json:"llm" yaml:"llm"`
	Server ServerConfig `json:"server" yaml:"server"`
	Store  StoreConfig  `json:"store" yaml:"store"`

	// AgentsFile optionally points to a YAML file overriding the
	// built-in agent definitions.
	AgentsFile string `json:"agents_file,omitempty" yaml:"agents_file,omitempty"`
}
