// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/carabiner-dev/command"
	"github.com/spf13/cobra"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

var _ command.OptionsSet = (*EndpointsOptions)(nil)

type EndpointsOptions struct {
	SettingsOptions
	JSON bool
}

var defaultEndpointsOptions = EndpointsOptions{
	SettingsOptions: defaultSettingsOptions,
}

func (eo *EndpointsOptions) Validate() error {
	return eo.SettingsOptions.Validate()
}

func (eo *EndpointsOptions) AddFlags(cmd *cobra.Command) {
	eo.SettingsOptions.AddFlags(cmd)
	cmd.PersistentFlags().BoolVar(&eo.JSON, "json", false, "Output in JSON format")
}

func (eo *EndpointsOptions) Config() *command.OptionsSetConfig {
	return nil
}

// endpointsOutput is the JSON document printed by the endpoints command.
type endpointsOutput struct {
	DirectoryLocation string `json:"directory_location"`
	AuthorityHost     string `json:"authority_host"`
	aad.ResolvedEndpoints
}

func AddEndpoints(parent *cobra.Command) {
	opts := defaultEndpointsOptions

	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "Print the resolved Azure AD endpoints",
		Long: `Prints the endpoints derived from the directory location and tenant
settings: the OAuth authorization and token URLs, the Microsoft Graph base URL
and the group membership query template.

Examples:
  # Endpoints of a single tenant application in the China cloud
  aadauth endpoints --set sonar.auth.aad.tenantId=contoso \
    --set "sonar.auth.aad.directoryLocation=Azure AD China"

  # Output as JSON
  aadauth endpoints --json`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.LoadSettings(opts.Logger())
			if err != nil {
				return err
			}

			out := endpointsOutput{
				DirectoryLocation: settings.Region().String(),
				AuthorityHost:     settings.CloudConfiguration().ActiveDirectoryAuthorityHost,
				ResolvedEndpoints: settings.Endpoints(),
			}

			w := cmd.OutOrStdout()
			if opts.JSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprintf(w, "Directory location:  %s\n", out.DirectoryLocation)
			fmt.Fprintf(w, "Authority host:      %s\n", out.AuthorityHost)
			fmt.Fprintf(w, "Authorization URL:   %s\n", out.AuthorizationURL)
			fmt.Fprintf(w, "Token URL:           %s\n", out.TokenURL)
			fmt.Fprintf(w, "Graph URL:           %s\n", out.DirectoryBaseURL)
			fmt.Fprintf(w, "Group membership:    %s\n", out.GroupMembershipURLTemplate)
			return nil
		},
	}
	opts.AddFlags(cmd)
	parent.AddCommand(cmd)
}
