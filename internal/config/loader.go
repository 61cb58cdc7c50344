package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Remote overrides
	RemoteBaseURL *string
	RemoteToken   *string
	RemoteTimeout *time.Duration

	// Validation overrides
	MinWorkMinutes  *int
	BreakMinMinutes *int
	BreakMaxMinutes *int

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	if overrides.RemoteBaseURL != nil {
		config.Remote.BaseURL = *overrides.RemoteBaseURL
	}
	if overrides.RemoteToken != nil {
		config.Remote.Token = *overrides.RemoteToken
	}
	if overrides.RemoteTimeout != nil {
		config.Remote.Timeout = *overrides.RemoteTimeout
	}

	if overrides.MinWorkMinutes != nil {
		config.Validation.MinWorkMinutes = *overrides.MinWorkMinutes
	}
	if overrides.BreakMinMinutes != nil {
		config.Validation.BreakMinMinutes = *overrides.BreakMinMinutes
	}
	if overrides.BreakMaxMinutes != nil {
		config.Validation.BreakMaxMinutes = *overrides.BreakMaxMinutes
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
