// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/cmdshelf/internal/ctxlog"
	"github.com/spf13/afero"
)

const (
	// AppName is the directory name used below the user's config directory.
	AppName = "cmdshelf"
	// FileName is the name of the default configuration file.
	FileName = "config.hcl"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CMDSHELF_"

	// FormatJSON selects JSON for the store snapshot.
	FormatJSON = "json"
	// FormatYAML selects YAML for the store snapshot.
	FormatYAML = "yaml"

	// LogPretty selects the human readable log handler.
	LogPretty = "pretty"
	// LogJSON selects the JSON log handler.
	LogJSON = "json"
)

var (
	// ErrInvalidConfig is returned when a setting has an unsupported value.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrParseConfig is returned when the configuration file cannot be decoded.
	ErrParseConfig = errors.New("failed to parse configuration file")
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read configuration file")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

var (
	userConfigDir = os.UserConfigDir
	userHomeDir   = os.UserHomeDir
)

// Config holds the user settings.
type Config struct {
	DataDir     string `hcl:"data_dir,optional"     env:"DATA_DIR"`
	StoreFormat string `hcl:"store_format,optional" env:"STORE_FORMAT"`
	Editor      string `hcl:"editor,optional"       env:"EDITOR"`
	Shell       string `hcl:"shell,optional"        env:"SHELL"`
	LogFormat   string `hcl:"log_format,optional"   env:"LOG_FORMAT"`

	// Path is the file the settings were read from, empty when none was found.
	Path string `env:"-"`
}

// Dir returns the cmdshelf directory below the user's config directory.
func Dir() (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the location of the default configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration.
//
// An empty path reads the default file, which may be missing. A path that was
// given explicitly must exist. Environment overrides and defaults are applied
// to the result, which is then validated.
func Load(ctx context.Context, path string) (*Config, error) {
	explicit := path != ""

	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			ctxlog.Debug(ctx, "no user config directory", "error", err)
		}

		path = p
	}

	cfg := &Config{}

	if path != "" {
		if err := cfg.decodeFile(ctx, path, explicit); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "configuration loaded",
		"path", cfg.Path,
		"data_dir", cfg.DataDir,
		"store_format", cfg.StoreFormat,
		"log_format", cfg.LogFormat,
	)

	return cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{FormatJSON, FormatYAML}, c.StoreFormat) {
		errs = append(errs, fmt.Errorf("%w: store_format %q, want %q or %q", ErrInvalidConfig, c.StoreFormat, FormatJSON, FormatYAML))
	}

	if !slices.Contains([]string{LogPretty, LogJSON}, c.LogFormat) {
		errs = append(errs, fmt.Errorf("%w: log_format %q, want %q or %q", ErrInvalidConfig, c.LogFormat, LogPretty, LogJSON))
	}

	return errors.Join(errs...)
}

func (c *Config) decodeFile(ctx context.Context, path string, explicit bool) error {
	fs := FsFactory()

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			ctxlog.Debug(ctx, "no configuration file", "path", path)
			return nil
		}

		return errors.Join(ErrReadConfig, err)
	}

	evalCtx, err := evalContext(filepath.Dir(path))
	if err != nil {
		return errors.Join(ErrParseConfig, err)
	}

	if err := hclsimple.Decode(path, src, evalCtx, c); err != nil {
		return errors.Join(ErrParseConfig, err)
	}

	c.Path = path

	return nil
}

func (c *Config) applyDefaults() error {
	if c.StoreFormat == "" {
		c.StoreFormat = FormatJSON
	}

	if c.LogFormat == "" {
		c.LogFormat = LogPretty
	}

	if c.DataDir == "" {
		dir, err := Dir()
		if err != nil {
			return errors.Join(ErrInvalidConfig, fmt.Errorf("data_dir is not set and there is no user config directory: %w", err))
		}

		c.DataDir = dir
	}

	c.DataDir = filepath.Clean(c.DataDir)

	return nil
}
