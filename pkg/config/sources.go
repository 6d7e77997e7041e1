// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

var (
	_ aad.Source = (*MapSource)(nil)
	_ aad.Source = (*EnvSource)(nil)
	_ aad.Source = (*DefaultsSource)(nil)
	_ aad.Source = (*ChainedSource)(nil)
)

// parseBool reads a boolean setting. Values that don't parse are treated as
// not set.
func parseBool(v string, ok bool) (bool, bool) {
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}

// MapSource keeps settings in memory. Empty values count as not set.
type MapSource struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapSource creates a MapSource holding a copy of values.
func NewMapSource(values map[string]string) *MapSource {
	m := &MapSource{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MapSource) String(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (m *MapSource) Bool(key string) (bool, bool) {
	return parseBool(m.String(key))
}

// Set stores a value.
func (m *MapSource) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Unset removes a value.
func (m *MapSource) Unset(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// Len returns the number of stored values.
func (m *MapSource) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// EnvSource reads settings from environment variables. The variable name is
// derived from the key: sonar.auth.aad.tenantId becomes
// SONAR_AUTH_AAD_TENANTID.
type EnvSource struct {
	prefix string
}

// NewEnvSource creates an EnvSource. A non empty prefix is prepended to
// every variable name followed by an underscore.
func NewEnvSource(prefix string) *EnvSource {
	return &EnvSource{prefix: prefix}
}

// EnvVar returns the environment variable name read for key.
func (e *EnvSource) EnvVar(key string) string {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if e.prefix != "" {
		return strings.ToUpper(e.prefix) + "_" + name
	}
	return name
}

func (e *EnvSource) String(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(e.EnvVar(key)))
	if v == "" {
		return "", false
	}
	return v, true
}

func (e *EnvSource) Bool(key string) (bool, bool) {
	return parseBool(e.String(key))
}

// DefaultsSource serves the catalog default value of every known setting
// that declares one.
type DefaultsSource struct {
	defaults map[string]string
}

// NewDefaultsSource builds a DefaultsSource from property definitions. With
// no definitions it uses every recognized setting.
func NewDefaultsSource(defs ...aad.PropertyDefinition) *DefaultsSource {
	if len(defs) == 0 {
		defs = aad.AllProperties()
	}
	d := &DefaultsSource{defaults: map[string]string{}}
	for _, def := range defs {
		if def.DefaultValue != "" {
			d.defaults[def.Key] = def.DefaultValue
		}
	}
	return d
}

func (d *DefaultsSource) String(key string) (string, bool) {
	v, ok := d.defaults[key]
	return v, ok
}

func (d *DefaultsSource) Bool(key string) (bool, bool) {
	return parseBool(d.String(key))
}

// ChainedSource looks a key up in each source in order. The first source
// that has the key wins.
type ChainedSource struct {
	sources []aad.Source
}

// NewChainedSource creates a source that tries each source in order.
func NewChainedSource(sources ...aad.Source) *ChainedSource {
	return &ChainedSource{sources: sources}
}

func (c *ChainedSource) String(key string) (string, bool) {
	for _, src := range c.sources {
		if v, ok := src.String(key); ok {
			return v, true
		}
	}
	return "", false
}

func (c *ChainedSource) Bool(key string) (bool, bool) {
	for _, src := range c.sources {
		if v, ok := src.Bool(key); ok {
			return v, true
		}
	}
	return false, false
}
