package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Geo       GeoConfig       `yaml:"geo" mapstructure:"geo"`
	Provider  ProviderConfig  `yaml:"provider" mapstructure:"provider"`
	Fuzzy     FuzzyConfig     `yaml:"fuzzy" mapstructure:"fuzzy"`
	Canonical CanonicalConfig `yaml:"canonical" mapstructure:"canonical"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CacheConfig configures the geocode cache backend.
type CacheConfig struct {
	Driver        string `yaml:"driver" mapstructure:"driver"`
	Path          string `yaml:"path" mapstructure:"path"`
	AltFile       string `yaml:"alt_file" mapstructure:"alt_file"`
	AlwaysResolve bool   `yaml:"always_resolve" mapstructure:"always_resolve"`
}

// GeoConfig configures country inference.
type GeoConfig struct {
	OverridesFile  string `yaml:"overrides_file" mapstructure:"overrides_file"`
	DefaultCountry string `yaml:"default_country" mapstructure:"default_country"`
}

// ProviderConfig configures the Nominatim client and retry behavior.
type ProviderConfig struct {
	BaseURL      string        `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Interval     time.Duration `yaml:"interval" mapstructure:"interval"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	MaxDepth     int           `yaml:"max_depth" mapstructure:"max_depth"`
	RetryBackoff time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
}

// FuzzyConfig configures address deduplication.
type FuzzyConfig struct {
	Threshold int `yaml:"threshold" mapstructure:"threshold"`
}

// CanonicalConfig configures address canonicalization.
type CanonicalConfig struct {
	MaxVariants int `yaml:"max_variants" mapstructure:"max_variants"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("gedplace")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEDPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("cache.driver", "csv")
	v.SetDefault("cache.path", "geo_cache.csv")
	v.SetDefault("provider.base_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("provider.user_agent", "gedplace-geocoder")
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("provider.interval", "1s")
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.max_depth", 3)
	v.SetDefault("provider.retry_backoff", "1s")
	v.SetDefault("fuzzy.threshold", 90)
	v.SetDefault("canonical.max_variants", 8)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for values the resolver cannot work
// with. Errors accumulate so the user sees every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Cache.Driver != "csv" && c.Cache.Driver != "sqlite" {
		problems = append(problems, "cache.driver must be csv or sqlite")
	}
	if c.Cache.Path == "" {
		problems = append(problems, "cache.path is required")
	}
	if c.Provider.BaseURL == "" {
		problems = append(problems, "provider.base_url is required")
	}
	if c.Provider.MaxRetries < 1 {
		problems = append(problems, "provider.max_retries must be >= 1")
	}
	if c.Provider.MaxDepth < 0 {
		problems = append(problems, "provider.max_depth must be >= 0")
	}
	if c.Fuzzy.Threshold < 0 || c.Fuzzy.Threshold > 100 {
		problems = append(problems, "fuzzy.threshold must be between 0 and 100")
	}
	if c.Canonical.MaxVariants < 1 {
		problems = append(problems, "canonical.max_variants must be >= 1")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
