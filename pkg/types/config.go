package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cite-editor/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// BackendName identifies the upstream bibliographic API.
type BackendName string

const (
	BackendOpenLibrary     BackendName = "openlibrary"
	BackendOpenAlex        BackendName = "openalex"
	BackendSemanticScholar BackendName = "semantic_scholar"
)

// SearchConfig holds settings for the suggestion provider.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the upstream API (default openlibrary).
	Backend BackendName `json:"backend" yaml:"backend" mapstructure:"backend"`

	// MaxResults is the top-N truncation applied to every response (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// ContactEmail is sent to OpenAlex as mailto for polite pool access.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty" mapstructure:"contact_email"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`
}

// ServerConfig holds settings for the HTTP proxy server.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// StoreConfig holds settings for local document persistence.
type StoreConfig struct {
	// Path is the SQLite database file (default "cite-editor.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// EditorConfig holds settings for the editing session.
type EditorConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// ServerURL is the base URL of the proxy server (default "http://localhost:5000").
	ServerURL string `json:"server_url" yaml:"server_url" mapstructure:"server_url"`

	// MaxQueryLength caps the number of characters collected after the
	// trigger (default 64).
	MaxQueryLength int `json:"max_query_length" yaml:"max_query_length" mapstructure:"max_query_length"`
}

// LogConfig selects the diagnostic log level and format.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all component configurations.
type Config struct {
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Editor EditorConfig `json:"editor" yaml:"editor" mapstructure:"editor"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
