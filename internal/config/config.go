// Package config loads the calc command's configuration file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/logging"
)

// Config is the configuration of the calc command.
//
//	log:
//	  level: info
//	  format: text
//	limits:
//	  maxLength: 4096
//	  maxDepth: 256
//	format: "%g"
//	jobs: 4
type Config struct {
	Log    Log    `json:"log"`
	Limits Limits `json:"limits"`
	// Format is the fmt verb used to print results.
	Format string `json:"format,omitempty"`
	// Jobs is the number of expressions evaluated concurrently.
	Jobs int `json:"jobs,omitempty"`
}

type Log struct {
	Level  string `json:"level,omitempty"`
	Format string `json:"format,omitempty"`
}

// Limits bounds the resources spent on a single expression.
type Limits struct {
	MaxLength int `json:"maxLength,omitempty"`
	MaxDepth  int `json:"maxDepth,omitempty"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Log: Log{
			Level:  logging.INFO.String(),
			Format: logging.TEXT.String(),
		},
		Limits: Limits{
			MaxLength: calculator.DefaultMaxLength,
			MaxDepth:  calculator.DefaultMaxDepth,
		},
		Format: "%g",
		Jobs:   1,
	}
}

// Load reads a YAML configuration file over the defaults. An empty path gives
// the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to read config file %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := logging.ParseLogLevel(c.Log.Level); err != nil {
		return errors.WithMessage(err, "log.level")
	}
	if _, err := logging.ParseLogFormat(c.Log.Format); err != nil {
		return errors.WithMessage(err, "log.format")
	}
	if c.Limits.MaxLength < 0 {
		return errors.Errorf("limits.maxLength must not be negative, got %d", c.Limits.MaxLength)
	}
	if c.Limits.MaxDepth < 0 {
		return errors.Errorf("limits.maxDepth must not be negative, got %d", c.Limits.MaxDepth)
	}
	if c.Format == "" {
		return errors.New("format must not be empty")
	}
	if c.Jobs < 1 {
		return errors.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// Options converts the limits to parsing options.
func (l Limits) Options() []calculator.Option {
	return []calculator.Option{
		calculator.MaxLength(l.MaxLength),
		calculator.MaxDepth(l.MaxDepth),
	}
}

// Logger builds the logger the configuration describes.
func (c Config) Logger() (logging.Logger, error) {
	level, err := logging.ParseLogLevel(c.Log.Level)
	if err != nil {
		return logging.Logger{}, err
	}
	format, err := logging.ParseLogFormat(c.Log.Format)
	if err != nil {
		return logging.Logger{}, err
	}
	return logging.New(level, format)
}
