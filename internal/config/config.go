// Package config provides configuration management for targetrun.
package config

// Config holds all configuration options for the tool.
type Config struct {
	// Resolution
	ManifestPath string `json:"manifest_path"` // target registry manifest (YAML)
	Prefix       string `json:"prefix"`        // namespace prefix override
	BaseDir      string `json:"base_dir"`      // base dir override for registry paths

	// Execution
	Quiet        bool `json:"quiet"`
	Capture      bool `json:"capture"`
	AllowFailure bool `json:"allow_failure"`
	Verbose      int  `json:"verbose"`
	Simulate     bool `json:"simulate"`

	// Batch
	RunfilePath string `json:"runfile_path"`
	Concurrency int    `json:"concurrency"`
	TUIEnabled  bool   `json:"tui"`

	// Observability
	MetricsAddr string `json:"metrics_addr"` // empty = metrics disabled
	LogFormat   string `json:"log_format"`   // text, json
	LogLevel    string `json:"log_level"`

	// Diagnostics
	SkipPreflight bool `json:"skip_preflight"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 1,
		LogFormat:   "text",
		LogLevel:    "info",
	}
}
