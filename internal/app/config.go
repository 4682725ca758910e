package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProfilePath string // hcl files
	Scopes      []string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProfilePath == "" {
		return nil, errors.New("ProfilePath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
