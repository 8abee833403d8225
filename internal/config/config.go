// Copyright 2025 The compute-mcp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the process configuration: the OCI credential
// profile and the tenancy/region the server operates against. It is read
// once at startup into an explicit Config value that gets passed into the
// server; nothing reads the environment after that.
package config

import (
	"fmt"
	"os"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// Environment variables read at process start.
const (
	// EnvProfileName selects the profile in the OCI config file
	// (~/.oci/config). Default: "DEFAULT".
	EnvProfileName = "PROFILE_NAME"
	// EnvTenancyOverride overrides the tenancy OCID from the config file.
	EnvTenancyOverride = "TENANCY_ID_OVERRIDE"
	// EnvRegionOverride overrides the region from the config file.
	EnvRegionOverride = "REGION_ID_OVERRIDE"
)

// Config holds the resolved process configuration. It is immutable for
// the process lifetime.
type Config struct {
	// ProfileName is the OCI config file profile in use.
	ProfileName string

	// TenancyID is the root compartment OCID. The compartment walk
	// starts here.
	TenancyID string

	// RegionID is the default region for backend clients. Tools may
	// still target other regions per call.
	RegionID string

	// Provider supplies credentials to the OCI SDK clients.
	Provider common.ConfigurationProvider
}

// Load resolves the configuration from the OCI config file profile named
// by PROFILE_NAME, applying TENANCY_ID_OVERRIDE and REGION_ID_OVERRIDE
// on top.
func Load() (Config, error) {
	profile := os.Getenv(EnvProfileName)
	if profile == "" {
		profile = "DEFAULT"
	}

	provider := common.CustomProfileConfigProvider("", profile)
	return FromProvider(provider, profile)
}

// FromProvider builds a Config from an existing configuration provider.
// Split out from Load so tests can supply a raw provider instead of a
// config file on disk.
func FromProvider(provider common.ConfigurationProvider, profile string) (Config, error) {
	cfg := Config{
		ProfileName: profile,
		Provider:    provider,
	}

	cfg.TenancyID = os.Getenv(EnvTenancyOverride)
	if cfg.TenancyID == "" {
		tenancy, err := provider.TenancyOCID()
		if err != nil {
			return Config{}, fmt.Errorf("resolving tenancy for profile %q: %w", profile, err)
		}
		cfg.TenancyID = tenancy
	}

	cfg.RegionID = os.Getenv(EnvRegionOverride)
	if cfg.RegionID == "" {
		region, err := provider.Region()
		if err != nil {
			return Config{}, fmt.Errorf("resolving region for profile %q: %w", profile, err)
		}
		cfg.RegionID = region
	}

	return cfg, nil
}
