package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jeremyforan/go-interaction-publisher"
)

type Config struct {
	Title        string `yaml:"title"`
	Event        string `yaml:"event"`
	InitialCount int    `yaml:"initialCount"`
	LogLevel     string `yaml:"logLevel"`
	LogFile      string `yaml:"logFile,omitempty"`     // logs are discarded when empty, the terminal belongs to the UI
	MetricsAddr  string `yaml:"metricsAddr,omitempty"` // e.g. ":9090", disabled when empty
}

var (
	ErrConfigFileUnreadable     = errors.New("config file is unreadable")
	ErrConfigFileUnmarshallable = errors.New("config file is unmarshallable")
	ErrEventMissing             = errors.New("event is missing in config")
	ErrInitialCountNegative     = errors.New("initialCount must not be negative")
	ErrLogLevelInvalid          = errors.New("logLevel is not a valid level")
)

// DefaultConfig mirrors the original demo: a "Tap!" button counting down from 3.
func DefaultConfig() Config {
	return Config{
		Title:        "Tap!",
		Event:        string(interaction.PrimaryActivation),
		InitialCount: 3,
		LogLevel:     "info",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrConfigFileUnreadable, "%s: %v", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(ErrConfigFileUnmarshallable, "%s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Event == "" {
		return ErrEventMissing
	}
	if c.InitialCount < 0 {
		return ErrInitialCountNegative
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrLogLevelInvalid, "%q", c.LogLevel)
	}
	return nil
}

// LogWriter opens the configured log destination. The returned closer is never nil.
func (c *Config) LogWriter() (io.Writer, func() error, error) {
	if c.LogFile == "" {
		return io.Discard, func() error { return nil }, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open log file")
	}
	return f, f.Close, nil
}
