// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package aad resolves the Azure AD authentication settings: it reads the
// configured values from an injected Source and derives the endpoints an
// OAuth authorization code flow needs.
package aad

import (
	"errors"
	"fmt"
)

// Recognized configuration keys.
const (
	KeyClientID           = "sonar.auth.aad.clientId.secured"
	KeyClientSecret       = "sonar.auth.aad.clientSecret.secured"
	KeyEnabled            = "sonar.auth.aad.enabled"
	KeyAllowUsersToSignUp = "sonar.auth.aad.allowUsersToSignUp"
	KeyTenantID           = "sonar.auth.aad.tenantId"
	KeyDirectoryLocation  = "sonar.auth.aad.directoryLocation"
	KeyEnableGroupsSync   = "sonar.auth.aad.enableGroupsSync"
	KeyLoginStrategy      = "sonar.auth.aad.loginStrategy"
	KeyMultiTenant        = "sonar.auth.aad.multiTenant"
)

const (
	commonTenant       = "common"
	authorizationPath  = "oauth2/authorize"
	tokenPath          = "oauth2/token"
	groupsRequestPath  = "/v1.0/%s/users/%s/memberOf"
	authRequestFormat  = "%s?client_id=%s&response_type=code&redirect_uri=%s&state=%s&scope=openid"
	defaultOAuth2Scope = "openid"
)

// ErrNotEnabled is returned by RequireEnabled when the authentication flow
// must not be started.
var ErrNotEnabled = errors.New("azure ad authentication is not enabled")

// Source is the configuration lookup the settings read from. A missing key
// is reported with ok == false.
type Source interface {
	String(key string) (string, bool)
	Bool(key string) (bool, bool)
}

// LoginStrategy selects how the local login is derived from the Azure AD
// identity.
type LoginStrategy string

const (
	LoginStrategyUnique     LoginStrategy = "Unique"
	LoginStrategyProviderID LoginStrategy = "Same as Azure AD login"
	LoginStrategyDefault                  = LoginStrategyUnique
)

// ResolvedEndpoints groups the derived URLs.
type ResolvedEndpoints struct {
	AuthorizationURL           string `json:"authorization_url"`
	TokenURL                   string `json:"token_url"`
	DirectoryBaseURL           string `json:"directory_base_url"`
	GroupMembershipURLTemplate string `json:"group_membership_url_template"`
}

// Settings reads the Azure AD settings from its source. Every accessor goes
// back to the source, nothing is cached.
type Settings struct {
	src Source
}

// New wraps the configuration source.
func New(src Source) *Settings {
	return &Settings{src: src}
}

func (s *Settings) str(key string) string {
	if v, ok := s.src.String(key); ok {
		return v
	}
	return ""
}

func (s *Settings) boolean(key string) bool {
	v, ok := s.src.Bool(key)
	return ok && v
}

// ClientID returns the application (client) id, empty when not configured.
func (s *Settings) ClientID() string {
	return s.str(KeyClientID)
}

// ClientSecret returns the client secret, empty when not configured.
func (s *Settings) ClientSecret() string {
	return s.str(KeyClientSecret)
}

// TenantID returns the configured tenant id, empty when not configured.
func (s *Settings) TenantID() string {
	return s.str(KeyTenantID)
}

// LoginStrategy returns the raw login strategy. Values outside the catalog
// are returned as is.
func (s *Settings) LoginStrategy() LoginStrategy {
	return LoginStrategy(s.str(KeyLoginStrategy))
}

// AllowUsersToSignUp reports whether new users may sign up, false when not
// configured.
func (s *Settings) AllowUsersToSignUp() bool {
	return s.boolean(KeyAllowUsersToSignUp)
}

// EnableGroupSync reports whether group synchronization is on, false when
// not configured.
func (s *Settings) EnableGroupSync() bool {
	return s.boolean(KeyEnableGroupsSync)
}

// MultiTenant reports whether the application accepts any tenant, false
// when not configured.
func (s *Settings) MultiTenant() bool {
	return s.boolean(KeyMultiTenant)
}

// Region returns the configured directory location, RegionGlobal when the
// value is missing or unknown.
func (s *Settings) Region() Region {
	raw, _ := s.src.String(KeyDirectoryLocation)
	return ParseRegion(raw)
}

// EnabledFlag returns the raw enabled toggle. Use IsEnabled to decide
// whether the flow may start.
func (s *Settings) EnabledFlag() bool {
	return s.boolean(KeyEnabled)
}

// IsEnabled reports whether the authentication flow may start: the enabled
// toggle must be on and the client id, client secret and login strategy
// must all be set.
func (s *Settings) IsEnabled() bool {
	return s.EnabledFlag() &&
		s.ClientID() != "" &&
		s.ClientSecret() != "" &&
		s.LoginStrategy() != ""
}

// RequireEnabled returns ErrNotEnabled when IsEnabled is false.
func (s *Settings) RequireEnabled() error {
	if !s.IsEnabled() {
		return ErrNotEnabled
	}
	return nil
}

// tenantSegment is the path segment after the login host. The tenant id is
// used verbatim, even when empty.
func (s *Settings) tenantSegment() string {
	if s.MultiTenant() {
		return commonTenant
	}
	return s.TenantID()
}

// AuthorizationURL returns the OAuth authorization endpoint.
func (s *Settings) AuthorizationURL() string {
	return fmt.Sprintf("%s/%s/%s", s.Region().LoginHost(), s.tenantSegment(), authorizationPath)
}

// AuthorityURL returns the OAuth token endpoint.
func (s *Settings) AuthorityURL() string {
	return fmt.Sprintf("%s/%s/%s", s.Region().LoginHost(), s.tenantSegment(), tokenPath)
}

// GraphURL returns the directory graph base URL of the configured region.
func (s *Settings) GraphURL() string {
	return s.Region().GraphHost()
}

// GroupMembershipURLTemplate returns the memberOf query URL with two %s
// placeholders: the directory (or tenant) id and the user id.
func (s *Settings) GroupMembershipURLTemplate() string {
	return s.GraphURL() + groupsRequestPath
}

// Endpoints resolves all derived URLs at once.
func (s *Settings) Endpoints() ResolvedEndpoints {
	return ResolvedEndpoints{
		AuthorizationURL:           s.AuthorizationURL(),
		TokenURL:                   s.AuthorityURL(),
		DirectoryBaseURL:           s.GraphURL(),
		GroupMembershipURLTemplate: s.GroupMembershipURLTemplate(),
	}
}

// AuthorizationRequestURL renders the browser redirect that starts the
// authorization code flow. Arguments are inserted as given, without
// escaping.
func (s *Settings) AuthorizationRequestURL(callbackURL, state string) string {
	return fmt.Sprintf(authRequestFormat, s.AuthorizationURL(), s.ClientID(), callbackURL, state)
}
