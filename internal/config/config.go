package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the OJT tracker application
type Config struct {
	Database    DatabaseConfig
	Remote      RemoteConfig
	Time        TimeConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// DatabaseConfig holds local database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"OJT_DB_DIR"`
	Filename       string        `env:"OJT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"OJT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"OJT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"OJT_DB_DIR_PERMISSIONS"`
}

// RemoteConfig holds remote store configuration
type RemoteConfig struct {
	BaseURL       string        `env:"OJT_REMOTE_URL"`
	Token         string        `env:"OJT_REMOTE_TOKEN"`
	SessionsTable string        `env:"OJT_REMOTE_SESSIONS_TABLE"`
	Timeout       time.Duration `env:"OJT_REMOTE_TIMEOUT"`
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `env:"OJT_TIME_DISPLAY_FORMAT"`
}

// ValidationConfig holds session validation rules configuration
type ValidationConfig struct {
	MinWorkMinutes  int `env:"OJT_VALIDATION_MIN_WORK_MINUTES"`
	BreakMinMinutes int `env:"OJT_VALIDATION_BREAK_MIN_MINUTES"`
	BreakMaxMinutes int `env:"OJT_VALIDATION_BREAK_MAX_MINUTES"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"OJT_APP_TIMEOUT"`
	Verbose bool          `env:"OJT_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".ojt")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "ojt.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Remote: RemoteConfig{
			BaseURL:       "",
			Token:         "",
			SessionsTable: "work_sessions",
			Timeout:       30 * time.Second,
		},
		Time: TimeConfig{
			DisplayFormat: "2006-01-02 15:04:05",
		},
		Validation: ValidationConfig{
			MinWorkMinutes:  15,
			BreakMinMinutes: 1,
			BreakMaxMinutes: 120,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("OJT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("OJT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("OJT_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("OJT_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("OJT_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Remote configuration
	if url := os.Getenv("OJT_REMOTE_URL"); url != "" {
		c.Remote.BaseURL = url
	}
	if token := os.Getenv("OJT_REMOTE_TOKEN"); token != "" {
		c.Remote.Token = token
	}
	if table := os.Getenv("OJT_REMOTE_SESSIONS_TABLE"); table != "" {
		c.Remote.SessionsTable = table
	}
	if timeout := os.Getenv("OJT_REMOTE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Remote.Timeout = d
		}
	}

	// Time configuration
	if format := os.Getenv("OJT_TIME_DISPLAY_FORMAT"); format != "" {
		c.Time.DisplayFormat = format
	}

	// Validation configuration
	if minWork := os.Getenv("OJT_VALIDATION_MIN_WORK_MINUTES"); minWork != "" {
		if n, err := strconv.Atoi(minWork); err == nil {
			c.Validation.MinWorkMinutes = n
		}
	}
	if breakMin := os.Getenv("OJT_VALIDATION_BREAK_MIN_MINUTES"); breakMin != "" {
		if n, err := strconv.Atoi(breakMin); err == nil {
			c.Validation.BreakMinMinutes = n
		}
	}
	if breakMax := os.Getenv("OJT_VALIDATION_BREAK_MAX_MINUTES"); breakMax != "" {
		if n, err := strconv.Atoi(breakMax); err == nil {
			c.Validation.BreakMaxMinutes = n
		}
	}

	// Application configuration
	if timeout := os.Getenv("OJT_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("OJT_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate remote configuration
	if c.Remote.SessionsTable == "" {
		return &ConfigError{Field: "remote.sessions_table", Message: "sessions table cannot be empty"}
	}
	if c.Remote.Timeout <= 0 {
		return &ConfigError{Field: "remote.timeout", Message: "remote timeout must be positive"}
	}

	// Validate time configuration
	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}

	// Validate validation configuration
	if c.Validation.MinWorkMinutes < 1 {
		return &ConfigError{Field: "validation.min_work_minutes", Message: "minimum work minutes must be at least 1"}
	}
	if c.Validation.BreakMinMinutes < 1 {
		return &ConfigError{Field: "validation.break_min_minutes", Message: "minimum break minutes must be at least 1"}
	}
	if c.Validation.BreakMaxMinutes < c.Validation.BreakMinMinutes {
		return &ConfigError{Field: "validation.break_max_minutes", Message: "maximum break minutes must be greater than minimum break minutes"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
