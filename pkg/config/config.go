// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package config provides the configuration sources the Azure AD settings
// are read from: settings files, environment variables, command line
// overrides and the catalog defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

const (
	appDirName       = "aadauth"
	settingsFileName = "settings.yaml"
)

// FileSource holds the settings read from a YAML file. The file is a flat
// map of setting keys to scalar values:
//
//	sonar.auth.aad.enabled: true
//	sonar.auth.aad.tenantId: 72f988bf-86f1-41af-91ab-2d7cd011db47
type FileSource struct {
	*MapSource
	Path string
}

var _ aad.Source = (*FileSource)(nil)

// DefaultPath returns the settings file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, settingsFileName)
}

// LoadFile parses the settings file at path.
func LoadFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Decoding into nodes keeps the scalar text as written: unquoted ids and
	// secrets such as 0123 or 1e3 must not go through number handling.
	raw := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	values := make(map[string]string, len(raw))
	for k, node := range raw {
		n := &node
		if n.Kind == yaml.AliasNode && n.Alias != nil {
			n = n.Alias
		}
		switch n.Kind {
		case yaml.ScalarNode:
			if n.ShortTag() == "!!null" {
				continue
			}
			values[k] = n.Value
		default:
			return nil, fmt.Errorf("setting %q in %s is not a scalar value", k, path)
		}
	}

	return &FileSource{MapSource: NewMapSource(values), Path: path}, nil
}

// LoadDefault builds the settings source from the environment, the default
// settings file when it exists and the catalog defaults.
func LoadDefault(logger logrus.FieldLogger) (aad.Source, error) {
	return Load(Options{}, logger)
}

// Options controls how Load assembles the settings source.
type Options struct {
	// Path of the settings file. Empty means DefaultPath, which may be
	// missing.
	Path string

	// EnvPrefix is prepended to environment variable names.
	EnvPrefix string

	// Overrides take precedence over every other source.
	Overrides map[string]string

	// NoDefaults disables the catalog defaults layer.
	NoDefaults bool
}

// Load builds the settings source. Precedence, highest first: overrides,
// environment, settings file, catalog defaults.
func Load(opts Options, logger logrus.FieldLogger) (aad.Source, error) {
	var sources []aad.Source

	if len(opts.Overrides) > 0 {
		logger.WithField("count", len(opts.Overrides)).Debugln("using settings overrides")
		sources = append(sources, NewMapSource(opts.Overrides))
	}

	sources = append(sources, NewEnvSource(opts.EnvPrefix))

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	file, err := LoadFile(path)
	switch {
	case err == nil:
		logger.WithFields(logrus.Fields{
			"path":     path,
			"settings": file.Len(),
		}).Debugln("loaded settings file")
		sources = append(sources, file)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logger.WithField("path", path).Debugln("no settings file found")
	default:
		return nil, fmt.Errorf("loading settings from %s: %w", path, err)
	}

	if !opts.NoDefaults {
		sources = append(sources, NewDefaultsSource())
	}

	return NewChainedSource(sources...), nil
}
