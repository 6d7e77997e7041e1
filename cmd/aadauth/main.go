// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carabiner-dev/aadauth/pkg/cmd"
)

var version = "dev" // Set via ldflags during build

func main() {
	rootCmd := &cobra.Command{
		Use:   "aadauth",
		Short: "Azure AD authentication settings resolver",
		Long: `aadauth inspects the Azure AD single sign-on settings and resolves the
endpoints the OAuth authorization code flow talks to.

Settings are read, highest precedence first, from --set overrides, the
environment (SONAR_AUTH_AAD_* variables), the settings file under the XDG
config directory and the built-in defaults.`,
	}

	cmd.AddStatus(rootCmd)
	cmd.AddEndpoints(rootCmd)
	cmd.AddProperties(rootCmd)
	cmd.AddAuthorize(rootCmd)
	addVersion(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addVersion(parent *cobra.Command) {
	parent.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("aadauth version %s\n", version)
		},
	})
}
