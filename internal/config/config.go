// Package config provides configuration loading and structs for the courtfinder server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Catalogue CatalogueConfig `yaml:"catalogue"`
	Search    SearchConfig    `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// BasePath is the URL prefix the service is mounted under, e.g. "/fact/".
	BasePath string `yaml:"base_path"`
	// TrustProxyHeaders makes redirects use X-Forwarded-Proto and X-Forwarded-Host.
	TrustProxyHeaders bool          `yaml:"trust_proxy_headers"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	// CORSOrigins lists origins allowed to call the JSON API from a browser,
	// e.g. "https://example.gov.uk". Empty disables CORS headers.
	CORSOrigins []string `yaml:"cors_origins"`
}

// Addr returns host:port for net.Listen.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogueConfig says where court data comes from.
type CatalogueConfig struct {
	// Path is a directory holding index.json (or .yaml) and per-court files.
	// Empty means the built-in sample catalogue.
	Path string `yaml:"path"`
	// Watch reloads the catalogue when files under Path change.
	Watch bool `yaml:"watch"`
}

// SearchConfig holds court filter settings.
type SearchConfig struct {
	// MatchFields lists court fields a query is matched against: name, area, type.
	MatchFields           []string `yaml:"match_fields"`
	Suggestions           *bool    `yaml:"suggestions"`
	MaxSuggestionDistance int      `yaml:"max_suggestion_distance"`
}

// SuggestionsOrDefault returns whether "did you mean" suggestions are on; defaults to true when unset.
func (s *SearchConfig) SuggestionsOrDefault() bool {
	if s.Suggestions != nil {
		return *s.Suggestions
	}
	return true
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path, expands paths, applies defaults and validates.
// Returns an error if the file cannot be read or parsed, or holds invalid values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.Catalogue.Path != "" {
		cfg.Catalogue.Path = expandPath(cfg.Catalogue.Path, filepath.Dir(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports values that cannot work at runtime.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") {
		problems = append(problems, fmt.Sprintf("server.base_path %q must start with /", c.Server.BasePath))
	}
	if c.Server.MaxBodyBytes < 0 {
		problems = append(problems, "server.max_body_bytes must not be negative")
	}
	for _, o := range c.Server.CORSOrigins {
		if o != "*" && (!strings.Contains(o, "://") || strings.HasSuffix(o, "/")) {
			problems = append(problems, fmt.Sprintf("server.cors_origins: %q must be scheme://host with no trailing slash", o))
		}
	}
	for _, f := range c.Search.MatchFields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "name", "area", "type":
		default:
			problems = append(problems, fmt.Sprintf("search.match_fields: unknown field %q", f))
		}
	}
	if c.Catalogue.Watch && c.Catalogue.Path == "" {
		problems = append(problems, "catalogue.watch needs catalogue.path")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
