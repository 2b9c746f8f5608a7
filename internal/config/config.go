// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/matt-FFFFFF/switchboard/internal/ctxlog"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the process configuration.
type Config struct {
	LogLevel          string            `env:"SWITCHBOARD_LOG_LEVEL"          envDefault:"WARN"`
	LogFormat         string            `env:"SWITCHBOARD_LOG_FORMAT"         envDefault:"pretty"`
	Manifests         []string          `env:"SWITCHBOARD_MANIFESTS"          envSeparator:","`
	NamespacedAliases bool              `env:"SWITCHBOARD_NAMESPACED_ALIASES" envDefault:"false"`
	FetchTimeout      time.Duration     `env:"SWITCHBOARD_FETCH_TIMEOUT"      envDefault:"30s"`
	Shell             string            `env:"SWITCHBOARD_SHELL"`
	EventBuffer       int               `env:"SWITCHBOARD_EVENT_BUFFER"       envDefault:"64"`
	ReplyVars         map[string]string `env:"SWITCHBOARD_REPLY_VARS"         envSeparator:","   envKeyValSeparator:"="`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}

	return c, c.Validate()
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	var errs []error

	if _, err := ctxlog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	switch c.LogFormat {
	case ctxlog.FormatPretty, ctxlog.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log format must be %q or %q, got %q", ctxlog.FormatPretty, ctxlog.FormatJSON, c.LogFormat))
	}

	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout))
	}

	if c.EventBuffer <= 0 {
		errs = append(errs, fmt.Errorf("event buffer must be positive, got %d", c.EventBuffer))
	}

	if len(errs) == 0 {
		return nil
	}

	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}

// Logger sets the shared log level and returns a logger in the configured format.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := ctxlog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	ctxlog.LevelVar.Set(level)

	return ctxlog.NewLogger(c.LogFormat, w)
}
