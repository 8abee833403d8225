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

package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oci-tools/compute-mcp/internal/compute"
)

// listComputeInstances implements the list_compute_instances tool.
func (s *Server) listComputeInstances(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	compartmentName, err := request.RequireString("compartment_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'compartment_name' argument")
	}
	region := request.GetString("region", "")

	compartment, err := s.directory.FindByName(ctx, compartmentName)
	if err != nil {
		return nil, err
	}

	backend, err := s.backends.Compute(region)
	if err != nil {
		return nil, err
	}

	instances, err := backend.ListInstances(ctx, *compartment.Id)
	if err != nil {
		return nil, &compute.BackendError{Op: "list instances", Err: err}
	}

	summaries := make([]compute.InstanceSummary, 0, len(instances))
	for _, i := range instances {
		summaries = append(summaries, compute.SummarizeInstance(i))
	}
	return summaries, nil
}

// getComputeInstance implements the get_compute_instance tool.
func (s *Server) getComputeInstance(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	instanceID, err := request.RequireString("instance_id")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'instance_id' argument")
	}
	region := request.GetString("region", "")

	backend, err := s.backends.Compute(region)
	if err != nil {
		return nil, err
	}

	instance, err := backend.GetInstance(ctx, instanceID)
	if err != nil {
		return nil, &compute.BackendError{Op: "get instance", Err: err}
	}
	return compute.DetailInstance(instance), nil
}

// getComputeInstanceByName implements the get_compute_instance_by_name
// tool: display-name lookup within a compartment, then the same detail
// projection as get_compute_instance.
func (s *Server) getComputeInstanceByName(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	instanceName, err := request.RequireString("instance_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'instance_name' argument")
	}
	compartmentName, err := request.RequireString("compartment_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'compartment_name' argument")
	}
	region := request.GetString("region", "")

	compartment, err := s.directory.FindByName(ctx, compartmentName)
	if err != nil {
		return nil, err
	}

	backend, err := s.backends.Compute(region)
	if err != nil {
		return nil, err
	}

	instance, err := compute.FindInstanceByName(ctx, backend, *compartment.Id, compartmentName, instanceName)
	if err != nil {
		return nil, err
	}

	// Re-fetch by OCID so the detail reflects the instance's current
	// state rather than the listing snapshot.
	detail, err := backend.GetInstance(ctx, *instance.Id)
	if err != nil {
		return nil, &compute.BackendError{Op: "get instance", Err: err}
	}
	return compute.DetailInstance(detail), nil
}
