// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeSettings(t, `
sonar.auth.aad.enabled: true
sonar.auth.aad.clientId.secured: id
sonar.auth.aad.tenantId: tenant
sonar.auth.aad.directoryLocation: Azure AD China
sonar.auth.aad.clientSecret.secured:
`)
		src, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error: %v", err)
		}
		if src.Path != path {
			t.Errorf("Path = %q, want %q", src.Path, path)
		}
		if v, ok := src.Bool(aad.KeyEnabled); !ok || !v {
			t.Errorf("enabled = %v, %v", v, ok)
		}
		if v, _ := src.String(aad.KeyDirectoryLocation); v != aad.DirectoryLocationCN {
			t.Errorf("directory location = %q", v)
		}
		if _, ok := src.String(aad.KeyClientSecret); ok {
			t.Error("null value reported as set")
		}
	})

	t.Run("numeric looking values keep their text", func(t *testing.T) {
		path := writeSettings(t, `
sonar.auth.aad.clientSecret.secured: 0123
sonar.auth.aad.clientId.secured: 12345678901234567890123
sonar.auth.aad.tenantId: 1e3
sonar.auth.aad.multiTenant: false
`)
		src, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error: %v", err)
		}
		s := aad.New(src)
		for _, tc := range []struct{ name, got, want string }{
			{"client secret", s.ClientSecret(), "0123"},
			{"client id", s.ClientID(), "12345678901234567890123"},
			{"tenant id", s.TenantID(), "1e3"},
		} {
			if tc.got != tc.want {
				t.Errorf("%s = %q, want %q", tc.name, tc.got, tc.want)
			}
		}
		want := "https://login.microsoftonline.com/1e3/oauth2/authorize"
		if got := s.AuthorizationURL(); got != want {
			t.Errorf("AuthorizationURL() = %q, want %q", got, want)
		}
		if v, ok := src.Bool(aad.KeyMultiTenant); !ok || v {
			t.Errorf("multi tenant = %v, %v", v, ok)
		}
	})

	t.Run("sequence value", func(t *testing.T) {
		path := writeSettings(t, "sonar.auth.aad.tenantId: [a, b]\n")
		if _, err := LoadFile(path); err == nil {
			t.Error("LoadFile() expected error for sequence values, got nil")
		}
	})

	t.Run("nested value", func(t *testing.T) {
		path := writeSettings(t, "sonar:\n  auth: true\n")
		if _, err := LoadFile(path); err == nil {
			t.Error("LoadFile() expected error for nested values, got nil")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeSettings(t, "a: [b\n")
		if _, err := LoadFile(path); err == nil {
			t.Error("LoadFile() expected error for invalid yaml, got nil")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile("/non/existent/settings.yaml"); err == nil {
			t.Error("LoadFile() expected error for missing file, got nil")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("precedence", func(t *testing.T) {
		path := writeSettings(t, `
sonar.auth.aad.tenantId: file-tenant
sonar.auth.aad.clientId.secured: file-id
sonar.auth.aad.clientSecret.secured: file-secret
sonar.auth.aad.enabled: true
`)
		t.Setenv("SONAR_AUTH_AAD_CLIENTID_SECURED", "env-id")

		src, err := Load(Options{
			Path:      path,
			Overrides: map[string]string{aad.KeyTenantID: "flag-tenant"},
		}, testLogger())
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}

		s := aad.New(src)
		if s.TenantID() != "flag-tenant" {
			t.Errorf("TenantID() = %q, want flag-tenant", s.TenantID())
		}
		if s.ClientID() != "env-id" {
			t.Errorf("ClientID() = %q, want env-id", s.ClientID())
		}
		if s.ClientSecret() != "file-secret" {
			t.Errorf("ClientSecret() = %q, want file-secret", s.ClientSecret())
		}
		if s.LoginStrategy() != aad.LoginStrategyUnique {
			t.Errorf("LoginStrategy() = %q, want catalog default", s.LoginStrategy())
		}
		if !s.IsEnabled() {
			t.Error("IsEnabled() = false, want true")
		}
	})

	t.Run("no defaults", func(t *testing.T) {
		path := writeSettings(t, "sonar.auth.aad.tenantId: t\n")
		src, err := Load(Options{Path: path, NoDefaults: true}, testLogger())
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if s := aad.New(src); s.LoginStrategy() != "" {
			t.Errorf("LoginStrategy() = %q, want empty", s.LoginStrategy())
		}
	})

	t.Run("explicit missing file", func(t *testing.T) {
		_, err := Load(Options{Path: filepath.Join(t.TempDir(), "missing.yaml")}, testLogger())
		if err == nil {
			t.Error("Load() expected error for missing explicit file, got nil")
		}
	})
}

func TestLoadDefault(t *testing.T) {
	// Runs after the environment is restored.
	t.Cleanup(xdg.Reload)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv(NewEnvSource("").EnvVar(aad.KeyTenantID), "")
	xdg.Reload()

	t.Run("no settings file", func(t *testing.T) {
		src, err := LoadDefault(testLogger())
		if err != nil {
			t.Fatalf("LoadDefault() error: %v", err)
		}
		s := aad.New(src)
		if s.TenantID() != "" {
			t.Errorf("TenantID() = %q, want empty", s.TenantID())
		}
		if s.LoginStrategy() != aad.LoginStrategyUnique {
			t.Errorf("LoginStrategy() = %q, want catalog default", s.LoginStrategy())
		}
	})

	t.Run("settings file", func(t *testing.T) {
		path := DefaultPath()
		if filepath.Dir(filepath.Dir(path)) != home {
			t.Fatalf("DefaultPath() = %q, want it under %q", path, home)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			t.Fatalf("MkdirAll() error: %v", err)
		}
		if err := os.WriteFile(path, []byte("sonar.auth.aad.tenantId: tenant\n"), 0o600); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
		src, err := LoadDefault(testLogger())
		if err != nil {
			t.Fatalf("LoadDefault() error: %v", err)
		}
		if got := aad.New(src).TenantID(); got != "tenant" {
			t.Errorf("TenantID() = %q, want tenant", got)
		}
	})
}
