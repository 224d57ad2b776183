package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// Config holds all application configuration.
type Config struct {
	Service  string         `mapstructure:"service"`
	Map      MapConfig      `mapstructure:"map"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	Store    StoreConfig    `mapstructure:"store"`
	Server   ServerConfig   `mapstructure:"server"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Log      LogConfig      `mapstructure:"log"`
}

// MapConfig points at optional replacements for the embedded map data.
type MapConfig struct {
	StatesPath string `mapstructure:"states_path"`
	RulesPath  string `mapstructure:"rules_path"`
}

type ViewportConfig struct {
	ZoomLevels  []float64 `mapstructure:"zoom_levels"`
	AnimationMS int       `mapstructure:"animation_ms"`
	TapSlop     float64   `mapstructure:"tap_slop"`
}

// Levels returns the configured zoom levels as a core.ZoomLevels.
func (v ViewportConfig) Levels() core.ZoomLevels {
	return core.ZoomLevels(v.ZoomLevels)
}

type StoreConfig struct {
	Kind        string `mapstructure:"kind"` // memory, file, valkey, postgres
	Path        string `mapstructure:"path"`
	ValkeyAddr  string `mapstructure:"valkey_addr"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	Namespace   string `mapstructure:"namespace"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// NATSConfig enables answer-change events when URL is set.
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: NEXUS_STORE_KIND → store.kind
	v.SetEnvPrefix("NEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return decode(v)
}

// Default returns the configuration with only defaults applied.
func Default(service string) *Config {
	v := viper.New()
	setDefaults(v, service)
	cfg, _ := decode(v)
	return cfg
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("service", service)
	v.SetDefault("map.states_path", "")
	v.SetDefault("map.rules_path", "")
	v.SetDefault("viewport.zoom_levels", []float64(core.DefaultZoomLevels))
	v.SetDefault("viewport.animation_ms", 250)
	v.SetDefault("viewport.tap_slop", 6.0)
	v.SetDefault("store.kind", "file")
	v.SetDefault("store.path", "nexus-answers")
	v.SetDefault("store.valkey_addr", "localhost:6379")
	v.SetDefault("store.postgres_dsn", "postgres://nexus@localhost:5432/nexus?sslmode=disable")
	v.SetDefault("store.namespace", "default")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "nexus.answers")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Viewport.Levels().Validate(); err != nil {
		errs = append(errs, "viewport."+err.Error())
	}
	if c.Viewport.AnimationMS < 0 {
		errs = append(errs, "viewport.animation_ms must not be negative")
	}
	if c.Viewport.TapSlop < 0 {
		errs = append(errs, "viewport.tap_slop must not be negative")
	}
	switch c.Store.Kind {
	case "memory":
	case "file":
		if c.Store.Path == "" {
			errs = append(errs, "store.path is required for the file store")
		}
	case "valkey":
		if c.Store.ValkeyAddr == "" {
			errs = append(errs, "store.valkey_addr is required for the valkey store")
		}
	case "postgres":
		if c.Store.PostgresDSN == "" {
			errs = append(errs, "store.postgres_dsn is required for the postgres store")
		}
	default:
		errs = append(errs, fmt.Sprintf("store.kind must be memory, file, valkey or postgres, got %q", c.Store.Kind))
	}
	if c.Store.Namespace == "" {
		errs = append(errs, "store.namespace is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		errs = append(errs, "nats.subject is required when nats.url is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
