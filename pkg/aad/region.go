// SPDX-FileCopyrightText: Copyright 2026 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package aad

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
)

// Region is the sovereign cloud the directory lives in.
type Region int

const (
	RegionGlobal Region = iota
	RegionUSGovernment
	RegionGermany
	RegionChina
)

// Directory location values as stored in the configuration.
const (
	DirectoryLocationGlobal = "Azure AD (Global)"
	DirectoryLocationUSGov  = "Azure AD for US Government"
	DirectoryLocationDE     = "Azure AD for Germany"
	DirectoryLocationCN     = "Azure AD China"
)

type regionHosts struct {
	location string
	login    string
	graph    string
}

var regions = map[Region]regionHosts{
	RegionGlobal: {
		location: DirectoryLocationGlobal,
		login:    "https://login.microsoftonline.com",
		graph:    "https://graph.microsoft.com",
	},
	RegionUSGovernment: {
		location: DirectoryLocationUSGov,
		login:    "https://login.microsoftonline.us",
		graph:    "https://graph.microsoft.com",
	},
	RegionGermany: {
		location: DirectoryLocationDE,
		login:    "https://login.microsoftonline.de",
		graph:    "https://graph.microsoft.de",
	},
	RegionChina: {
		location: DirectoryLocationCN,
		login:    "https://login.chinacloudapi.cn",
		graph:    "https://microsoftgraph.chinacloudapi.cn",
	},
}

// ParseRegion maps a directory location value to its region. Missing and
// unknown values resolve to RegionGlobal, they are never an error.
func ParseRegion(raw string) Region {
	switch raw {
	case DirectoryLocationUSGov:
		return RegionUSGovernment
	case DirectoryLocationDE:
		return RegionGermany
	case DirectoryLocationCN:
		return RegionChina
	case DirectoryLocationGlobal:
		return RegionGlobal
	default:
		// Unknown or missing locations fall back to the global cloud.
		return RegionGlobal
	}
}

func (r Region) hosts() regionHosts {
	if h, ok := regions[r]; ok {
		return h
	}
	return regions[RegionGlobal]
}

// String returns the directory location value of the region.
func (r Region) String() string {
	return r.hosts().location
}

// LoginHost returns the base URL of the region's login endpoints.
func (r Region) LoginHost() string {
	return r.hosts().login
}

// GraphHost returns the base URL of the region's directory graph API.
func (r Region) GraphHost() string {
	return r.hosts().graph
}

// CloudConfiguration returns the azcore cloud configuration pointing
// credentials at the region's authority host.
func (r Region) CloudConfiguration() cloud.Configuration {
	return cloud.Configuration{
		ActiveDirectoryAuthorityHost: r.LoginHost() + "/",
		Services:                     map[cloud.ServiceName]cloud.ServiceConfiguration{},
	}
}

// CloudConfiguration returns the azcore cloud configuration of the
// configured region.
func (s *Settings) CloudConfiguration() cloud.Configuration {
	return s.Region().CloudConfiguration()
}
