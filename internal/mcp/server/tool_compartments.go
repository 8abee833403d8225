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

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oci-tools/compute-mcp/internal/compute"
)

// listCompartments implements the list_compartments tool.
func (s *Server) listCompartments(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	compartments, err := s.directory.All(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]compute.CompartmentSummary, 0, len(compartments))
	for _, c := range compartments {
		summaries = append(summaries, compute.SummarizeCompartment(c))
	}
	return summaries, nil
}
