package config

import (
	"io"
	"strings"
	"testing"
)

func TestParseFlags(t *testing.T) {
	cfg, rest, err := ParseFlags([]string{
		"-manifest", "build/targets.yaml",
		"-prefix", "proj",
		"-v", "2",
		"-simulate",
		"tool", "--help",
	}, io.Discard)
	if err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}

	if cfg.ManifestPath != "build/targets.yaml" {
		t.Errorf("ManifestPath = %q", cfg.ManifestPath)
	}
	if cfg.Prefix != "proj" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
	if cfg.Verbose != 2 {
		t.Errorf("Verbose = %d, want 2", cfg.Verbose)
	}
	if !cfg.Simulate {
		t.Error("Simulate not set")
	}
	if len(rest) != 2 || rest[0] != "tool" || rest[1] != "--help" {
		t.Errorf("remaining args = %q", rest)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	cfg, rest, err := ParseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseFlags returned error: %v", err)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Concurrency)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
	if len(rest) != 0 {
		t.Errorf("remaining args = %q, want none", rest)
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	if _, _, err := ParseFlags([]string{"-definitely-unknown"}, io.Discard); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string // substring, empty = valid
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"tui without runfile", func(c *Config) { c.TUIEnabled = true }, "tui"},
		{"tui with runfile", func(c *Config) { c.TUIEnabled = true; c.RunfilePath = "jobs.yaml" }, ""},
		{"negative verbose", func(c *Config) { c.Verbose = -1 }, "verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate returned error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate accepted invalid config")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Concurrency = 0
	cfg.LogFormat = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate accepted invalid config")
	}
	for _, field := range []string{"concurrency", "log_format"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("joined error %q misses %q", err.Error(), field)
		}
	}
}
