package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Nominatim NominatimConfig `yaml:"nominatim" mapstructure:"nominatim"`
	Audit     AuditConfig     `yaml:"audit" mapstructure:"audit"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// CatalogConfig locates the catalog source files to audit.
type CatalogConfig struct {
	DataDir    string `yaml:"data_dir" mapstructure:"data_dir"`
	FilePrefix string `yaml:"file_prefix" mapstructure:"file_prefix"`
	FileExt    string `yaml:"file_ext" mapstructure:"file_ext"`
}

// NominatimConfig configures the geocoding client.
type NominatimConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
	AcceptLanguage string `yaml:"accept_language" mapstructure:"accept_language"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxAttempts    int    `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// AuditConfig configures the batch audit run.
type AuditConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the validation HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.data_dir", "data")
	v.SetDefault("catalog.file_prefix", "spots-")
	v.SetDefault("catalog.file_ext", ".ts")
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("nominatim.user_agent", "geoaudit/1.0")
	v.SetDefault("nominatim.accept_language", "ja")
	v.SetDefault("nominatim.timeout_secs", 10)
	v.SetDefault("nominatim.max_attempts", 3)
	v.SetDefault("audit.concurrency", 3)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks the fields the given command mode depends on.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Audit.Concurrency < 1 || c.Audit.Concurrency > 10 {
		problems = append(problems, "audit.concurrency must be between 1 and 10")
	}

	switch mode {
	case "audit":
		if c.Catalog.DataDir == "" {
			problems = append(problems, "catalog.data_dir is required")
		}
	case "verify", "suggest":
		if c.Nominatim.UserAgent == "" {
			problems = append(problems, "nominatim.user_agent is required")
		}
		if c.Nominatim.BaseURL == "" {
			problems = append(problems, "nominatim.base_url is required")
		}
	case "serve":
		if c.Nominatim.UserAgent == "" {
			problems = append(problems, "nominatim.user_agent is required")
		}
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
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
