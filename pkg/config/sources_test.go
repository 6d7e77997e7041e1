// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

func TestMapSource(t *testing.T) {
	src := NewMapSource(map[string]string{
		"string": "value",
		"empty":  "",
		"yes":    "true",
		"no":     "false",
		"junk":   "maybe",
	})

	t.Run("strings", func(t *testing.T) {
		if v, ok := src.String("string"); !ok || v != "value" {
			t.Errorf("String() = %q, %v", v, ok)
		}
		if _, ok := src.String("empty"); ok {
			t.Error("empty value reported as set")
		}
		if _, ok := src.String("missing"); ok {
			t.Error("missing value reported as set")
		}
	})

	t.Run("booleans", func(t *testing.T) {
		if v, ok := src.Bool("yes"); !ok || !v {
			t.Errorf("Bool(yes) = %v, %v", v, ok)
		}
		if v, ok := src.Bool("no"); !ok || v {
			t.Errorf("Bool(no) = %v, %v", v, ok)
		}
		if _, ok := src.Bool("junk"); ok {
			t.Error("unparsable boolean reported as set")
		}
	})

	t.Run("set and unset", func(t *testing.T) {
		src.Set("new", "x")
		if v, _ := src.String("new"); v != "x" {
			t.Errorf("String(new) = %q after Set", v)
		}
		src.Unset("new")
		if _, ok := src.String("new"); ok {
			t.Error("value still set after Unset")
		}
	})
}

func TestEnvSource(t *testing.T) {
	t.Run("key mapping", func(t *testing.T) {
		for key, want := range map[string]string{
			aad.KeyClientID:          "SONAR_AUTH_AAD_CLIENTID_SECURED",
			aad.KeyTenantID:          "SONAR_AUTH_AAD_TENANTID",
			aad.KeyDirectoryLocation: "SONAR_AUTH_AAD_DIRECTORYLOCATION",
		} {
			if got := NewEnvSource("").EnvVar(key); got != want {
				t.Errorf("EnvVar(%q) = %q, want %q", key, got, want)
			}
		}
		if got := NewEnvSource("test").EnvVar(aad.KeyEnabled); got != "TEST_SONAR_AUTH_AAD_ENABLED" {
			t.Errorf("prefixed EnvVar = %q", got)
		}
	})

	t.Run("values", func(t *testing.T) {
		t.Setenv("SONAR_AUTH_AAD_TENANTID", "  tenant  ")
		t.Setenv("SONAR_AUTH_AAD_MULTITENANT", "true")

		src := NewEnvSource("")
		if v, ok := src.String(aad.KeyTenantID); !ok || v != "tenant" {
			t.Errorf("String() = %q, %v", v, ok)
		}
		if v, ok := src.Bool(aad.KeyMultiTenant); !ok || !v {
			t.Errorf("Bool() = %v, %v", v, ok)
		}
		if _, ok := src.String("definitely.not.set.12345"); ok {
			t.Error("unset variable reported as set")
		}
	})
}

func TestDefaultsSource(t *testing.T) {
	src := NewDefaultsSource()

	if v, ok := src.String(aad.KeyLoginStrategy); !ok || v != "Unique" {
		t.Errorf("login strategy default = %q, %v", v, ok)
	}
	if v, ok := src.String(aad.KeyDirectoryLocation); !ok || v != aad.DirectoryLocationGlobal {
		t.Errorf("directory location default = %q, %v", v, ok)
	}
	if v, ok := src.Bool(aad.KeyAllowUsersToSignUp); !ok || !v {
		t.Errorf("sign up default = %v, %v", v, ok)
	}
	if _, ok := src.String(aad.KeyClientID); ok {
		t.Error("client id has no default")
	}

	s := aad.New(src)
	if s.LoginStrategy() != aad.LoginStrategyUnique {
		t.Errorf("LoginStrategy() = %q, want %q", s.LoginStrategy(), aad.LoginStrategyUnique)
	}
	if s.IsEnabled() {
		t.Error("IsEnabled() = true with catalog defaults only")
	}
}

func TestChainedSource(t *testing.T) {
	high := NewMapSource(map[string]string{aad.KeyTenantID: "high", aad.KeyEnabled: "junk"})
	low := NewMapSource(map[string]string{
		aad.KeyTenantID: "low",
		aad.KeyClientID: "id",
		aad.KeyEnabled:  "true",
	})
	src := NewChainedSource(high, low)

	if v, _ := src.String(aad.KeyTenantID); v != "high" {
		t.Errorf("tenant = %q, want high", v)
	}
	if v, _ := src.String(aad.KeyClientID); v != "id" {
		t.Errorf("client id = %q, want id", v)
	}
	if v, ok := src.Bool(aad.KeyEnabled); !ok || !v {
		t.Errorf("enabled = %v, %v", v, ok)
	}
	if _, ok := NewChainedSource().String(aad.KeyTenantID); ok {
		t.Error("empty chain reported a value")
	}
}
