package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Inputs   []string       `yaml:"inputs"`
	Catalog  string         `yaml:"catalog"`
	Link     LinkConfig     `yaml:"link"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Report   ReportConfig   `yaml:"report"`
}

type LinkConfig struct {
	DistanceKm float64 `yaml:"distance_km"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type ServerConfig struct {
	Enabled     bool `yaml:"enabled"`
	Port        int  `yaml:"port"`
	MetricsPort int  `yaml:"metrics_port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig.Path empty means stdout.
type ReportConfig struct {
	Path string `yaml:"path"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Link: LinkConfig{
			DistanceKm: 837,
		},
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Inputs) == 0 {
		errs = append(errs, errors.New("no band inputs configured"))
	}
	if c.Link.DistanceKm < 0 {
		errs = append(errs, fmt.Errorf("link distance %v is negative", c.Link.DistanceKm))
	}
	if c.Server.Enabled {
		if !validPort(c.Server.Port) {
			errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
		}
		if !validPort(c.Server.MetricsPort) {
			errs = append(errs, fmt.Errorf("invalid metrics port %d", c.Server.MetricsPort))
		}
		if c.Server.Port == c.Server.MetricsPort {
			errs = append(errs, fmt.Errorf("server and metrics ports are both %d", c.Server.Port))
		}
	}
	return errors.Join(errs...)
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// NewLogger builds the process logger from the logging section.
func NewLogger(w io.Writer, lc LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BANDPLAN_INPUTS"); v != "" {
		cfg.Inputs = nil
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Inputs = append(cfg.Inputs, p)
			}
		}
	}
	if v := os.Getenv("BANDPLAN_CATALOG"); v != "" {
		cfg.Catalog = v
	}
	if v := os.Getenv("BANDPLAN_LINK_DISTANCE_KM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Link.DistanceKm = f
		}
	}
	if v := os.Getenv("BANDPLAN_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("BANDPLAN_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("BANDPLAN_SERVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Server.Enabled = b
		}
	}
	if v := os.Getenv("BANDPLAN_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("BANDPLAN_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("BANDPLAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BANDPLAN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("BANDPLAN_REPORT_PATH"); v != "" {
		cfg.Report.Path = v
	}
}
