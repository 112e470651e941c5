// Package config loads tool configuration from a YAML file with
// environment overrides. Precedence is flags > environment > file >
// defaults; the flag layer lives in the commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skagseth/synopsis"
	"github.com/skagseth/synopsis/ocr"
	"github.com/skagseth/synopsis/render"
)

// Config is the on-disk configuration schema.
type Config struct {
	// Input and Output are the batch-mode directories.
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Method selects the extraction pipeline: auto, layout or ocr.
	Method string `yaml:"method"`

	// Workers bounds concurrent extractions in batch mode.
	Workers int `yaml:"workers"`

	OCR struct {
		Language    string        `yaml:"language"`
		Scale       float64       `yaml:"scale"`
		PageTimeout time.Duration `yaml:"page_timeout"`
	} `yaml:"ocr"`

	History struct {
		// Path of the sqlite run-history database. Empty disables
		// history.
		Path string `yaml:"path"`
	} `yaml:"history"`

	Web struct {
		Addr        string `yaml:"addr"`
		MaxUploadMB int64  `yaml:"max_upload_mb"`
	} `yaml:"web"`

	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Input = "input"
	c.Output = "output"
	c.Method = "auto"
	c.Workers = 4
	c.OCR.Language = ocr.DefaultLanguage
	c.OCR.Scale = render.DefaultScale
	c.Web.Addr = ":8080"
	c.Web.MaxUploadMB = 32
	return c
}

// Load reads the YAML config at path on top of the defaults. A missing
// file is not an error; it yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv overlays SYNOPSIS_* environment variables onto cfg.
func FromEnv(cfg Config) Config {
	cfg.Input = envOr("SYNOPSIS_INPUT", cfg.Input)
	cfg.Output = envOr("SYNOPSIS_OUTPUT", cfg.Output)
	cfg.Method = envOr("SYNOPSIS_METHOD", cfg.Method)
	cfg.Workers = envInt("SYNOPSIS_WORKERS", cfg.Workers)
	cfg.OCR.Language = envOr("SYNOPSIS_OCR_LANGUAGE", cfg.OCR.Language)
	cfg.OCR.Scale = envFloat("SYNOPSIS_OCR_SCALE", cfg.OCR.Scale)
	cfg.OCR.PageTimeout = envDuration("SYNOPSIS_OCR_PAGE_TIMEOUT", cfg.OCR.PageTimeout)
	cfg.History.Path = envOr("SYNOPSIS_HISTORY_PATH", cfg.History.Path)
	cfg.Web.Addr = envOr("SYNOPSIS_WEB_ADDR", cfg.Web.Addr)
	cfg.Web.MaxUploadMB = envInt64("SYNOPSIS_WEB_MAX_UPLOAD_MB", cfg.Web.MaxUploadMB)
	cfg.Verbose = envBool("SYNOPSIS_VERBOSE", cfg.Verbose)
	return cfg
}

// Validate checks the settings shared by the commands.
func (c Config) Validate() error {
	if _, err := synopsis.ParseMethod(c.Method); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.OCR.Scale <= 0 {
		return fmt.Errorf("ocr scale must be positive, got %g", c.OCR.Scale)
	}
	if c.OCR.PageTimeout < 0 {
		return fmt.Errorf("ocr page timeout must not be negative, got %s", c.OCR.PageTimeout)
	}
	if c.Web.MaxUploadMB < 1 {
		return fmt.Errorf("web max upload must be at least 1 MiB, got %d", c.Web.MaxUploadMB)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
