// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"

	"github.com/carabiner-dev/command"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/carabiner-dev/aadauth/pkg/aad"
)

var _ command.OptionsSet = (*AuthorizeOptions)(nil)

type AuthorizeOptions struct {
	SettingsOptions
	CallbackURL string
	State       string
	PKCE        bool
}

var defaultAuthorizeOptions = AuthorizeOptions{
	SettingsOptions: defaultSettingsOptions,
}

func (ao *AuthorizeOptions) Validate() error {
	errs := []error{
		ao.SettingsOptions.Validate(),
	}
	if ao.CallbackURL == "" {
		errs = append(errs, errors.New("callback URL not set"))
	} else if u, err := url.Parse(ao.CallbackURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid callback URL %q", ao.CallbackURL))
	}
	return errors.Join(errs...)
}

func (ao *AuthorizeOptions) AddFlags(cmd *cobra.Command) {
	ao.SettingsOptions.AddFlags(cmd)
	cmd.PersistentFlags().StringVar(&ao.CallbackURL, "callback", "", "Redirect URI registered for the application")
	cmd.PersistentFlags().StringVar(&ao.State, "state", "", "State parameter (random when not set)")
	cmd.PersistentFlags().BoolVar(&ao.PKCE, "pkce", false, "Add a PKCE S256 code challenge and print the verifier")
}

func (ao *AuthorizeOptions) Config() *command.OptionsSetConfig {
	return nil
}

// generateState generates a random state parameter for CSRF protection
func generateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// authorizeURL builds the authorization request. Without PKCE it is the
// plain request format; with PKCE the oauth2 client config adds the code
// challenge and the verifier is returned.
func authorizeURL(s *aad.Settings, callbackURL, state string, pkce bool) (authURL, verifier string) {
	if !pkce {
		return s.AuthorizationRequestURL(callbackURL, state), ""
	}
	verifier = oauth2.GenerateVerifier()
	return s.OAuth2Config(callbackURL).AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)), verifier
}

func AddAuthorize(parent *cobra.Command) {
	opts := defaultAuthorizeOptions

	cmd := &cobra.Command{
		Use:   "authorize-url",
		Short: "Print the authorization request URL",
		Long: `Prints the URL that starts the Azure AD authorization code flow.

The command refuses to build the URL when authentication is not enabled, the
same gate the login flow applies before contacting Azure AD.

Examples:
  aadauth authorize-url --callback https://sonar.example.com/oauth2/callback/aad

  # With a PKCE challenge, the verifier is printed to stderr
  aadauth authorize-url --callback http://127.0.0.1:8080/callback --pkce`,
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

			if err := settings.RequireEnabled(); err != nil {
				return fmt.Errorf("%w (run 'aadauth status' to see the missing settings)", err)
			}

			state := opts.State
			if state == "" {
				state, err = generateState()
				if err != nil {
					return fmt.Errorf("generating state: %w", err)
				}
			}

			authURL, verifier := authorizeURL(settings, opts.CallbackURL, state, opts.PKCE)
			logger.WithField("region", settings.Region().String()).Debugln("built authorization request")

			if verifier != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Code verifier: %s\n", verifier)
			}
			fmt.Fprintln(cmd.OutOrStdout(), authURL)
			return nil
		},
	}
	opts.AddFlags(cmd)
	parent.AddCommand(cmd)
}
