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

// Package oci adapts the OCI SDK clients to the narrow backend
// interfaces the domain logic consumes. No retry or caching is layered
// on top of the SDK; each call is a single round trip.
package oci

import (
	"context"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/identity"

	"github.com/oci-tools/compute-mcp/internal/config"
)

// ComputeBackend bundles the compute-service capabilities the tools
// need: state queries, lifecycle action dispatch, and listing.
type ComputeBackend interface {
	GetInstance(ctx context.Context, instanceID string) (core.Instance, error)
	InstanceAction(ctx context.Context, instanceID string, action core.InstanceActionActionEnum) error
	ListInstances(ctx context.Context, compartmentID string) ([]core.Instance, error)
}

// Clients owns the SDK client handles for the process default region
// and constructs per-region compute clients on demand.
type Clients struct {
	cfg      config.Config
	compute  core.ComputeClient
	identity identity.IdentityClient
}

// NewClients builds the default-region clients from the process
// configuration.
func NewClients(cfg config.Config) (*Clients, error) {
	computeClient, err := core.NewComputeClientWithConfigurationProvider(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("creating compute client: %w", err)
	}
	computeClient.SetRegion(cfg.RegionID)

	identityClient, err := identity.NewIdentityClientWithConfigurationProvider(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("creating identity client: %w", err)
	}
	identityClient.SetRegion(cfg.RegionID)

	return &Clients{
		cfg:      cfg,
		compute:  computeClient,
		identity: identityClient,
	}, nil
}

// Compute returns a compute backend for the given region, or the
// process default when region is empty. Regional backends are built
// fresh per call; nothing regional is cached.
func (c *Clients) Compute(region string) (ComputeBackend, error) {
	if region == "" || region == c.cfg.RegionID {
		return &computeAdapter{client: c.compute}, nil
	}

	client, err := core.NewComputeClientWithConfigurationProvider(c.cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("creating compute client for region %s: %w", region, err)
	}
	client.SetRegion(region)
	return &computeAdapter{client: client}, nil
}

// Identity returns the identity backend for compartment resolution.
func (c *Clients) Identity() IdentityBackend {
	return &identityAdapter{client: c.identity}
}

// IdentityBackend mirrors compute.IdentityBackend; redeclared here so
// this package does not import the domain package it serves.
type IdentityBackend interface {
	ListCompartments(ctx context.Context, tenancyID string, page *string) ([]identity.Compartment, *string, error)
	GetCompartment(ctx context.Context, compartmentID string) (identity.Compartment, error)
}

type computeAdapter struct {
	client core.ComputeClient
}

func (a *computeAdapter) GetInstance(ctx context.Context, instanceID string) (core.Instance, error) {
	resp, err := a.client.GetInstance(ctx, core.GetInstanceRequest{
		InstanceId: common.String(instanceID),
	})
	if err != nil {
		return core.Instance{}, err
	}
	return resp.Instance, nil
}

func (a *computeAdapter) InstanceAction(ctx context.Context, instanceID string, action core.InstanceActionActionEnum) error {
	_, err := a.client.InstanceAction(ctx, core.InstanceActionRequest{
		InstanceId: common.String(instanceID),
		Action:     action,
	})
	return err
}

func (a *computeAdapter) ListInstances(ctx context.Context, compartmentID string) ([]core.Instance, error) {
	resp, err := a.client.ListInstances(ctx, core.ListInstancesRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

type identityAdapter struct {
	client identity.IdentityClient
}

func (a *identityAdapter) ListCompartments(ctx context.Context, tenancyID string, page *string) ([]identity.Compartment, *string, error) {
	resp, err := a.client.ListCompartments(ctx, identity.ListCompartmentsRequest{
		CompartmentId:          common.String(tenancyID),
		CompartmentIdInSubtree: common.Bool(true),
		AccessLevel:            identity.ListCompartmentsAccessLevelAccessible,
		LifecycleState:         identity.CompartmentLifecycleStateActive,
		Page:                   page,
	})
	if err != nil {
		return nil, nil, err
	}
	return resp.Items, resp.OpcNextPage, nil
}

func (a *identityAdapter) GetCompartment(ctx context.Context, compartmentID string) (identity.Compartment, error) {
	resp, err := a.client.GetCompartment(ctx, identity.GetCompartmentRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return identity.Compartment{}, err
	}
	return resp.Compartment, nil
}
