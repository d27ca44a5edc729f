package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "graphql-demo.toml"

// Defaults applied when a value is missing from the configuration file.
const (
	DefaultPort         = 4000
	DefaultReadTimeout  = 15
	DefaultWriteTimeout = 15
	DefaultIdleTimeout  = 60
	DefaultMeID         = 1
	DefaultMaxDepth     = 10
	DefaultSearchLimit  = 1000
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
)

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// LogFormats lists the accepted log encoders.
var LogFormats = []string{"console", "json"}

// Config holds the server configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	GraphQL GraphQLConfig `toml:"graphql"`
	Search  SearchConfig  `toml:"search"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig defines the HTTP listener. Timeouts are in seconds.
type ServerConfig struct {
	Port         int  `toml:"port"`
	Playground   bool `toml:"playground"`
	ReadTimeout  int  `toml:"read_timeout"`
	WriteTimeout int  `toml:"write_timeout"`
	IdleTimeout  int  `toml:"idle_timeout"`
}

// DataConfig defines where the dataset comes from and who the viewer is.
type DataConfig struct {
	// Seed is a YAML seed file; empty uses the built-in sample data.
	Seed string `toml:"seed,omitempty"`
	// MeID is the current user: returned by me, author of new posts and
	// giver of likes. It must name a user in the seed.
	MeID int `toml:"me_id"`
}

// GraphQLConfig defines engine limits.
type GraphQLConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// SearchConfig defines full-text search settings.
type SearchConfig struct {
	Limit int `toml:"limit"`
}

// LogConfig defines server logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         DefaultPort,
			Playground:   true,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		Data: DataConfig{
			MeID: DefaultMeID,
		},
		GraphQL: GraphQLConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Search: SearchConfig{
			Limit: DefaultSearchLimit,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads configuration from the file at path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	// Decode over the defaults so absent keys keep their default value
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Apply defaults for zeroed values
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Data.MeID == 0 {
		cfg.Data.MeID = DefaultMeID
	}
	if cfg.Search.Limit == 0 {
		cfg.Search.Limit = DefaultSearchLimit
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the file at path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.GraphQL.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("graphql.max_depth must not be negative"))
	}
	if c.Search.Limit < 0 {
		errs = append(errs, fmt.Errorf("search.limit must not be negative"))
	}
	if !slices.Contains(LogLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of %v", c.Log.Level, LogLevels))
	}
	if !slices.Contains(LogFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q is not one of %v", c.Log.Format, LogFormats))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
