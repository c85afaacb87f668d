package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// ClaudeDir is the root of the session store. Sessions live under
	// <ClaudeDir>/projects/<project>/<sessionId>.jsonl.
	// Defaults to ~/.claude.
	ClaudeDir string `json:"claude_dir,omitempty"`

	// MaxMessageLength is the default truncation length for message
	// bodies in the detail view. 0 means no truncation.
	MaxMessageLength int `json:"max_message_length,omitempty"`

	// PreviewContext is the number of characters of context shown on
	// each side of a grep match.
	PreviewContext int `json:"preview_context,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxMessageLength: 2000,
		PreviewContext:   100,
	}
}

// ProjectsDir returns the directory holding per-project session dirs.
func (c *Config) ProjectsDir() string {
	return filepath.Join(c.ClaudeDir, "projects")
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of
// ~/.claude-history.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	if cfg.ClaudeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.ClaudeDir = filepath.Join(home, ".claude")
	}
	return cfg, nil
}

// loadFile loads configuration from a specific file path, merged over
// defaults. A missing file yields the defaults.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and
// deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.ClaudeDir = overlay.ClaudeDir
	if result.ClaudeDir == "" {
		result.ClaudeDir = base.ClaudeDir
	}

	result.MaxMessageLength = overlay.MaxMessageLength
	if result.MaxMessageLength == 0 {
		result.MaxMessageLength = base.MaxMessageLength
	}

	result.PreviewContext = overlay.PreviewContext
	if result.PreviewContext == 0 {
		result.PreviewContext = base.PreviewContext
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
