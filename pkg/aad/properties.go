// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package aad

import (
	"fmt"
	"strconv"
)

// PropertyType is the input type of a setting in the operator UI.
type PropertyType string

const (
	TypeString           PropertyType = "STRING"
	TypeBoolean          PropertyType = "BOOLEAN"
	TypeSingleSelectList PropertyType = "SINGLE_SELECT_LIST"
)

// Category groups every Azure AD setting on one operator settings page.
const Category = "Azure Active Directory"

// Setting sub categories, prefixed with their display position.
const (
	CategoryLocation       = "(1) Azure Active Directory"
	CategoryAuthentication = "(2) Authentication"
	CategoryGroupSync      = "(3) Groups Synchronization"
)

// PropertyDefinition describes one recognized configuration key.
type PropertyDefinition struct {
	Key          string       `json:"key"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	SubCategory  string       `json:"sub_category"`
	Type         PropertyType `json:"type"`
	DefaultValue string       `json:"default_value,omitempty"`
	Options      []string     `json:"options,omitempty"`
	Index        int          `json:"index"`
}

var authenticationProperties = []PropertyDefinition{
	{
		Key:          KeyEnabled,
		Name:         "Enabled",
		Description:  "Enable Azure AD users to login. Value is ignored if client ID and secret are not defined.",
		Category:     Category,
		SubCategory:  CategoryAuthentication,
		Type:         TypeBoolean,
		DefaultValue: strconv.FormatBool(false),
		Index:        1,
	},
	{
		Key:         KeyClientID,
		Name:        "Client ID",
		Description: "Client ID provided by Azure AD when registering the application.",
		Category:    Category,
		SubCategory: CategoryAuthentication,
		Type:        TypeString,
		Index:       2,
	},
	{
		Key:         KeyClientSecret,
		Name:        "Client Secret",
		Description: "Client key provided by Azure AD when registering the application.",
		Category:    Category,
		SubCategory: CategoryAuthentication,
		Type:        TypeString,
		Index:       3,
	},
	{
		Key:          KeyMultiTenant,
		Name:         "Multi-tenant Azure Application",
		Description:  "multi-tenant application",
		Category:     Category,
		SubCategory:  CategoryAuthentication,
		Type:         TypeBoolean,
		DefaultValue: strconv.FormatBool(false),
		Index:        4,
	},
	{
		Key:         KeyTenantID,
		Name:        "Tenant ID",
		Description: "Azure AD Tenant ID.",
		Category:    Category,
		SubCategory: CategoryAuthentication,
		Type:        TypeString,
		Index:       5,
	},
	{
		Key:          KeyAllowUsersToSignUp,
		Name:         "Allow users to sign-up",
		Description:  "Allow new users to authenticate. When set to 'false', only existing users will be able to authenticate to the server.",
		Category:     Category,
		SubCategory:  CategoryAuthentication,
		Type:         TypeBoolean,
		DefaultValue: strconv.FormatBool(true),
		Index:        6,
	},
	{
		Key:  KeyLoginStrategy,
		Name: "Login generation strategy",
		Description: fmt.Sprintf("When the login strategy is set to '%s', the user's login will be auto-generated the first time so that it is unique. "+
			"When the login strategy is set to '%s', the user's login will be the Azure AD login.",
			LoginStrategyUnique, LoginStrategyProviderID),
		Category:     Category,
		SubCategory:  CategoryAuthentication,
		Type:         TypeSingleSelectList,
		DefaultValue: string(LoginStrategyDefault),
		Options:      []string{string(LoginStrategyUnique), string(LoginStrategyProviderID)},
		Index:        7,
	},
}

var groupProperties = []PropertyDefinition{
	{
		Key:  KeyEnableGroupsSync,
		Name: "Enable Groups Synchronization",
		Description: "Enable groups synchronization from Azure AD to SonarQube, For each Azure AD group user belongs to," +
			"the user will be associated to a group with the same name(if it exists) in SonarQube.",
		Category:     Category,
		SubCategory:  CategoryGroupSync,
		Type:         TypeBoolean,
		DefaultValue: strconv.FormatBool(false),
		Index:        1,
	},
}

var locationProperties = []PropertyDefinition{
	{
		Key:          KeyDirectoryLocation,
		Name:         "Directory Location",
		Description:  "The location of the Azure installation. You normally won't need to change this.",
		Category:     Category,
		SubCategory:  CategoryLocation,
		Type:         TypeSingleSelectList,
		DefaultValue: DirectoryLocationGlobal,
		Options: []string{
			DirectoryLocationGlobal, DirectoryLocationUSGov, DirectoryLocationDE, DirectoryLocationCN,
		},
		Index: 1,
	},
}

// AuthenticationProperties returns the authentication settings in display
// order.
func AuthenticationProperties() []PropertyDefinition {
	return cloneProperties(authenticationProperties)
}

// GroupProperties returns the group synchronization settings.
func GroupProperties() []PropertyDefinition {
	return cloneProperties(groupProperties)
}

// LocationProperties returns the directory location settings.
func LocationProperties() []PropertyDefinition {
	return cloneProperties(locationProperties)
}

// AllProperties returns every recognized setting, grouped by category in
// display order.
func AllProperties() []PropertyDefinition {
	all := make([]PropertyDefinition, 0, len(locationProperties)+len(authenticationProperties)+len(groupProperties))
	all = append(all, LocationProperties()...)
	all = append(all, AuthenticationProperties()...)
	all = append(all, GroupProperties()...)
	return all
}

// cloneProperties copies the table so callers can't modify it.
func cloneProperties(defs []PropertyDefinition) []PropertyDefinition {
	out := make([]PropertyDefinition, len(defs))
	for i, d := range defs {
		if d.Options != nil {
			d.Options = append([]string(nil), d.Options...)
		}
		out[i] = d
	}
	return out
}
