// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/carabiner-dev/command"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carabiner-dev/aadauth/pkg/aad"
	"github.com/carabiner-dev/aadauth/pkg/config"
)

var _ command.OptionsSet = (*SettingsOptions)(nil)

var defaultSettingsOptions = SettingsOptions{
	LogLevel: "warn",
}

// SettingsOptions select where the settings are read from.
type SettingsOptions struct {
	ConfigPath string
	EnvPrefix  string
	Set        []string
	NoDefaults bool
	LogLevel   string
}

func (so *SettingsOptions) Config() *command.OptionsSetConfig {
	return nil
}

func (so *SettingsOptions) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(so.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := so.overrides(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (so *SettingsOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&so.ConfigPath, "config", "", fmt.Sprintf("Settings file (default %s)", config.DefaultPath()))
	cmd.PersistentFlags().StringVar(&so.EnvPrefix, "env-prefix", "", "Prefix of the environment variables holding settings")
	cmd.PersistentFlags().StringArrayVar(&so.Set, "set", nil, "Override a setting (key=value, repeatable)")
	cmd.PersistentFlags().BoolVar(&so.NoDefaults, "no-defaults", false, "Don't fall back to the default setting values")
	cmd.PersistentFlags().StringVar(&so.LogLevel, "log-level", defaultSettingsOptions.LogLevel, "Log level (debug, info, warn, error)")
}

func (so *SettingsOptions) overrides() (map[string]string, error) {
	if len(so.Set) == 0 {
		return nil, nil
	}
	values := make(map[string]string, len(so.Set))
	for _, kv := range so.Set {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid setting override %q (expected key=value)", kv)
		}
		values[key] = value
	}
	return values, nil
}

// Logger creates the logger for the command, writing to stderr.
func (so *SettingsOptions) Logger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(so.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// LoadSettings assembles the configuration source and wraps it in the
// settings resolver.
func (so *SettingsOptions) LoadSettings(logger logrus.FieldLogger) (*aad.Settings, error) {
	overrides, err := so.overrides()
	if err != nil {
		return nil, err
	}
	src, err := config.Load(config.Options{
		Path:       so.ConfigPath,
		EnvPrefix:  so.EnvPrefix,
		Overrides:  overrides,
		NoDefaults: so.NoDefaults,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return aad.New(src), nil
}
