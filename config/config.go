// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads tsunamikit settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/wavetermdev/tsunamikit/ui"
	"github.com/wavetermdev/tsunamikit/util"
)

const ErrCodeDecode = "config:decode"

const EnvPrefix = "TSUNAMIKIT_"

const DefaultEnvFile = ".env"

const (
	DefaultTick = 100 * time.Millisecond
	DefaultAddr = "127.0.0.1:8110"
)

// keys without EnvPrefix, lowercased to match the json tags below
var envKeys = []string{"LOCALE", "FORMAT", "TICK", "ADDR"}

type Config struct {
	Locale ui.Locale     `json:"locale"`
	Format ui.Format     `json:"format"`
	Tick   time.Duration `json:"tick"`
	Addr   string        `json:"addr"`
}

func Default() *Config {
	return &Config{
		Locale: ui.DefaultLocale,
		Format: ui.DefaultFormat,
		Tick:   DefaultTick,
		Addr:   DefaultAddr,
	}
}

// Load reads envFiles in order (later files win, missing files are skipped),
// then the process environment, on top of Default().
func Load(envFiles ...string) (*Config, error) {
	input := make(map[string]any)
	for _, fileName := range envFiles {
		vals, err := godotenv.Read(fileName)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error reading env file %q: %w", fileName, err)
		}
		collect(input, func(key string) (string, bool) {
			val, ok := vals[key]
			return val, ok
		})
	}
	collect(input, os.LookupEnv)
	cfg := Default()
	if err := decode(input, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func collect(input map[string]any, lookup func(string) (string, bool)) {
	for _, key := range envKeys {
		if val, ok := lookup(EnvPrefix + key); ok && val != "" {
			input[strings.ToLower(key)] = val
		}
	}
}

func decode(input map[string]any, cfg *Config) error {
	dconfig := &mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	}
	decoder, err := mapstructure.NewDecoder(dconfig)
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return util.MakeCodedError(ErrCodeDecode, fmt.Errorf("error decoding config: %w", err))
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := ui.ParseFormat(string(c.Format)); err != nil {
		return fmt.Errorf("%sFORMAT: %w", EnvPrefix, err)
	}
	locale, err := ui.ParseLocale(string(c.Locale))
	if err != nil {
		return fmt.Errorf("%sLOCALE: %w", EnvPrefix, err)
	}
	c.Locale = locale
	if c.Tick <= 0 {
		return util.Errorf(ErrCodeDecode, "%sTICK must be positive, got %v", EnvPrefix, c.Tick)
	}
	if c.Addr == "" {
		return util.Errorf(ErrCodeDecode, "%sADDR cannot be empty", EnvPrefix)
	}
	return nil
}
