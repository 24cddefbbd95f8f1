// Package config loads sqlcomplete settings with viper. Values come from
// defaults, an optional YAML/TOML/JSON file and SQLCOMPLETE_* environment
// variables, in increasing order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/grammar"
)

// EnvPrefix is the prefix of environment variables, e.g. SQLCOMPLETE_DIALECT.
const EnvPrefix = "SQLCOMPLETE"

// Config is the complete configuration.
type Config struct {
	Complete CompleteConfig `mapstructure:"complete"`
	Schema   SchemaConfig   `mapstructure:"schema"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

// CompleteConfig holds completion options.
type CompleteConfig struct {
	Dialect           string `mapstructure:"dialect"`
	KeywordsAfterFrom bool   `mapstructure:"keywords_after_from"`
	CaseInsensitive   bool   `mapstructure:"case_insensitive"`
	MaxItems          int    `mapstructure:"max_items"`
	KeywordCase       string `mapstructure:"keyword_case"`
}

// SchemaConfig selects the schema provider. File takes precedence over SQLite.
type SchemaConfig struct {
	File    string        `mapstructure:"file"`
	SQLite  string        `mapstructure:"sqlite"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP harness.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	// Completion defaults
	v.SetDefault("complete.dialect", grammar.DefaultDialect)
	v.SetDefault("complete.keywords_after_from", false)
	v.SetDefault("complete.case_insensitive", false)
	v.SetDefault("complete.max_items", 0) // unlimited
	v.SetDefault("complete.keyword_case", string(complete.KeywordUpper))

	// Schema provider defaults
	v.SetDefault("schema.file", "")
	v.SetDefault("schema.sqlite", "")
	v.SetDefault("schema.timeout", 2*time.Second)

	v.SetDefault("server.addr", "127.0.0.1:8765")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads configuration. An empty path looks for sqlcomplete.{yaml,toml,json}
// in the working directory and tolerates its absence; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	} else {
		v.SetConfigName("sqlcomplete")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config file")
			}
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Complete.MaxItems < 0 {
		return errors.Newf("complete.max_items must be >= 0, got %d", c.Complete.MaxItems)
	}
	switch complete.KeywordCase(c.Complete.KeywordCase) {
	case complete.KeywordUpper, complete.KeywordLower, complete.KeywordPreserve:
	default:
		return errors.WithHint(
			errors.Newf("invalid complete.keyword_case %q", c.Complete.KeywordCase),
			"use upper, lower or preserve")
	}
	if c.Schema.Timeout < 0 {
		return errors.Newf("schema.timeout must be >= 0, got %s", c.Schema.Timeout)
	}
	return nil
}

// Options converts the completion settings to engine options.
func (c *Config) Options() *complete.Options {
	return &complete.Options{
		KeywordsAfterFrom: c.Complete.KeywordsAfterFrom,
		CaseInsensitive:   c.Complete.CaseInsensitive,
		MaxItems:          c.Complete.MaxItems,
		KeywordCase:       complete.KeywordCase(c.Complete.KeywordCase),
	}
}

// Grammar loads the configured dialect.
func (c *Config) Grammar() (*grammar.Grammar, error) {
	return grammar.Load(c.Complete.Dialect)
}
