// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package aad

import (
	"golang.org/x/oauth2"
)

// OAuth2Endpoint returns the derived authorization and token URLs. Azure AD
// expects the client credentials in the request body.
func (s *Settings) OAuth2Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   s.AuthorizationURL(),
		TokenURL:  s.AuthorityURL(),
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

// OAuth2Config builds the client configuration for the authorization code
// flow. Scopes default to openid.
func (s *Settings) OAuth2Config(redirectURL string, scopes ...string) *oauth2.Config {
	if len(scopes) == 0 {
		scopes = []string{defaultOAuth2Scope}
	}
	return &oauth2.Config{
		ClientID:     s.ClientID(),
		ClientSecret: s.ClientSecret(),
		Endpoint:     s.OAuth2Endpoint(),
		RedirectURL:  redirectURL,
		Scopes:       scopes,
	}
}
