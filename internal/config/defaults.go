package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.BasePath == "" {
		cfg.Server.BasePath = "/"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 64 << 10
	}
	if len(cfg.Search.MatchFields) == 0 {
		cfg.Search.MatchFields = []string{"name", "area"}
	}
	if cfg.Search.MaxSuggestionDistance == 0 {
		cfg.Search.MaxSuggestionDistance = 2
	}
	// Suggestions default to on when unset (nil).
	if cfg.Search.Suggestions == nil {
		t := true
		cfg.Search.Suggestions = &t
	}
}
