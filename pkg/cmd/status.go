// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/carabiner-dev/command"
	"github.com/spf13/cobra"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

var _ command.OptionsSet = (*StatusOptions)(nil)

type StatusOptions struct {
	SettingsOptions
	JSON bool
}

var defaultStatusOptions = StatusOptions{
	SettingsOptions: defaultSettingsOptions,
}

func (so *StatusOptions) Validate() error {
	return so.SettingsOptions.Validate()
}

func (so *StatusOptions) AddFlags(cmd *cobra.Command) {
	so.SettingsOptions.AddFlags(cmd)
	cmd.PersistentFlags().BoolVar(&so.JSON, "json", false, "Output in JSON format")
}

func (so *StatusOptions) Config() *command.OptionsSetConfig {
	return nil
}

// Status is the readiness report of the authentication settings.
type Status struct {
	Enabled            bool     `json:"enabled"`
	Missing            []string `json:"missing,omitempty"`
	LoginStrategy      string   `json:"login_strategy,omitempty"`
	MultiTenant        bool     `json:"multi_tenant"`
	TenantID           string   `json:"tenant_id,omitempty"`
	DirectoryLocation  string   `json:"directory_location"`
	AllowUsersToSignUp bool     `json:"allow_users_to_sign_up"`
	EnableGroupSync    bool     `json:"enable_group_sync"`
}

func newStatus(s *aad.Settings) *Status {
	st := &Status{
		Enabled:            s.IsEnabled(),
		LoginStrategy:      string(s.LoginStrategy()),
		MultiTenant:        s.MultiTenant(),
		TenantID:           s.TenantID(),
		DirectoryLocation:  s.Region().String(),
		AllowUsersToSignUp: s.AllowUsersToSignUp(),
		EnableGroupSync:    s.EnableGroupSync(),
	}
	if !s.EnabledFlag() {
		st.Missing = append(st.Missing, aad.KeyEnabled)
	}
	if s.ClientID() == "" {
		st.Missing = append(st.Missing, aad.KeyClientID)
	}
	if s.ClientSecret() == "" {
		st.Missing = append(st.Missing, aad.KeyClientSecret)
	}
	if s.LoginStrategy() == "" {
		st.Missing = append(st.Missing, aad.KeyLoginStrategy)
	}
	return st
}

func printStatus(w io.Writer, st *Status) {
	state := "disabled"
	if st.Enabled {
		state = "enabled"
	}
	fmt.Fprintf(w, "Authentication:     %s\n", state)
	for _, key := range st.Missing {
		fmt.Fprintf(w, "  missing:          %s\n", key)
	}
	fmt.Fprintf(w, "Login strategy:     %s\n", st.LoginStrategy)
	fmt.Fprintf(w, "Directory location: %s\n", st.DirectoryLocation)
	if st.MultiTenant {
		fmt.Fprintf(w, "Tenant:             multi-tenant\n")
	} else {
		fmt.Fprintf(w, "Tenant:             %s\n", st.TenantID)
	}
	fmt.Fprintf(w, "Users can sign up:  %v\n", st.AllowUsersToSignUp)
	fmt.Fprintf(w, "Group sync:         %v\n", st.EnableGroupSync)
}

func AddStatus(parent *cobra.Command) {
	opts := defaultStatusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether Azure AD authentication is ready",
		Long: `Reports whether the Azure AD authentication flow can start.

Authentication is enabled only when sonar.auth.aad.enabled is true and the
client id, client secret and login strategy are all set. The settings that
are missing are listed.`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.Logger()
			settings, err := opts.LoadSettings(logger)
			if err != nil {
				return err
			}

			st := newStatus(settings)
			logger.WithField("enabled", st.Enabled).Debugln("resolved authentication status")

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
	opts.AddFlags(cmd)
	parent.AddCommand(cmd)
}
