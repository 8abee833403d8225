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

// computeInstanceAction implements the compute_instance_action tool:
// the lifecycle action coordinator. The region falls back to the code
// embedded in the instance OCID, then the action string is validated,
// then the coordinator queries current state and dispatches transitions.
func (s *Server) computeInstanceAction(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	instanceID, err := request.RequireString("instance_id")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'instance_id' argument")
	}
	actionStr, err := request.RequireString("action")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'action' argument")
	}

	region := request.GetString("region", "")
	if region == "" {
		region, err = compute.RegionFromOCID(instanceID)
		if err != nil {
			return nil, err
		}
	}

	action, err := compute.ParseAction(actionStr)
	if err != nil {
		return nil, err
	}

	if !s.limiter.AllowAction() {
		return nil, fmt.Errorf("Rate limit exceeded for lifecycle actions. Please try again later.")
	}

	backend, err := s.backends.Compute(region)
	if err != nil {
		return nil, err
	}

	return compute.NewCoordinator(backend).Execute(ctx, instanceID, action)
}
