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

// Package server implements the MCP server that exposes OCI compute
// management as tools. Every tool returns valid JSON on every path;
// failures become a {"error": "<message>"} body, never a protocol-level
// fault.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/oci-tools/compute-mcp/internal/compute"
	"github.com/oci-tools/compute-mcp/internal/config"
	"github.com/oci-tools/compute-mcp/internal/log"
	"github.com/oci-tools/compute-mcp/internal/oci"
)

// Transport selects how the MCP server is served.
type Transport string

const (
	// TransportStdio serves over stdin/stdout for direct MCP client
	// integration.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves the streamable HTTP protocol on a TCP
	// address.
	TransportHTTP Transport = "http"
)

// DefaultAddr matches the original server's listen address: all
// interfaces, port 8000.
const DefaultAddr = ":8000"

// Backends supplies the OCI-facing collaborators for the tool handlers.
type Backends interface {
	// Identity returns the compartment-resolution backend.
	Identity() oci.IdentityBackend
	// Compute returns a compute backend for the given region, or the
	// process default region when empty.
	Compute(region string) (oci.ComputeBackend, error)
}

// Config configures the MCP server.
type Config struct {
	// Name is the MCP server name (default: "oci-compute").
	Name string

	// Version is reported to MCP clients.
	Version string

	// OCI is the resolved process configuration.
	OCI config.Config

	// Backends supplies the OCI clients. Required.
	Backends Backends

	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server wraps the MCP server and the OCI compute tools.
type Server struct {
	mcpServer *server.MCPServer
	cfg       config.Config
	backends  Backends
	directory *compute.Directory
	limiter   *RateLimiter
	logger    *slog.Logger
	version   string
}

// New creates the MCP server and registers all tools.
func New(cfg Config) (*Server, error) {
	if cfg.Backends == nil {
		return nil, fmt.Errorf("backends are required")
	}
	if cfg.Name == "" {
		cfg.Name = "oci-compute"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s := &Server{
		mcpServer: mcpServer,
		cfg:       cfg.OCI,
		backends:  cfg.Backends,
		directory: compute.NewDirectory(cfg.Backends.Identity(), cfg.OCI.TenancyID),
		limiter:   NewRateLimiter(10, 100),
		logger:    log.WithComponent(cfg.Logger, "mcp-server"),
		version:   cfg.Version,
	}

	s.registerTools()
	return s, nil
}

// registerTools registers the compute management tools.
func (s *Server) registerTools() {
	regionProperty := map[string]interface{}{
		"type":        "string",
		"description": "OCI region identifier (e.g. 'us-ashburn-1'). Defaults to the server's configured region.",
	}

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_compartments",
		Description: "List all compartments in the tenancy, including nested compartments and the root compartment.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handle("list_compartments", s.listCompartments))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_compute_instances",
		Description: "List all compute instances in a compartment identified by name.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"compartment_name": map[string]interface{}{
					"type":        "string",
					"description": "Compartment name (case-insensitive). Use list_compartments to discover names.",
				},
				"region": regionProperty,
			},
			Required: []string{"compartment_name"},
		},
	}, s.handle("list_compute_instances", s.listComputeInstances))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_compute_instance",
		Description: "Get detailed information about a compute instance by OCID, including shape configuration and launch options.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"instance_id": map[string]interface{}{
					"type":        "string",
					"description": "The OCID of the instance",
				},
				"region": regionProperty,
			},
			Required: []string{"instance_id"},
		},
	}, s.handle("get_compute_instance", s.getComputeInstance))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_compute_instance_by_name",
		Description: "Get detailed information about a compute instance by display name within a compartment.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"instance_name": map[string]interface{}{
					"type":        "string",
					"description": "Instance display name (case-insensitive)",
				},
				"compartment_name": map[string]interface{}{
					"type":        "string",
					"description": "Compartment name (case-insensitive)",
				},
				"region": regionProperty,
			},
			Required: []string{"instance_name", "compartment_name"},
		},
	}, s.handle("get_compute_instance_by_name", s.getComputeInstanceByName))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "compute_instance_action",
		Description: "Perform a lifecycle action on a compute instance. Actions: START, STOP, RESET. The region is inferred from the instance OCID when not given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"instance_id": map[string]interface{}{
					"type":        "string",
					"description": "The OCID of the instance",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"description": "Lifecycle action: START, STOP, or RESET (case-insensitive)",
				},
				"region": regionProperty,
			},
			Required: []string{"instance_id", "action"},
		},
	}, s.handle("compute_instance_action", s.computeInstanceAction))
}

// Run serves the MCP server over the selected transport, blocking until
// the context is cancelled or the transport fails. For stdio the server
// runs until the client closes the stream.
func (s *Server) Run(ctx context.Context, transport Transport, addr string) error {
	s.logger.Info("starting MCP server",
		slog.String("version", s.version),
		slog.String("transport", string(transport)),
		slog.String("tenancy", s.cfg.TenancyID),
		slog.String(log.RegionKey, s.cfg.RegionID))

	switch transport {
	case TransportStdio:
		if err := server.ServeStdio(s.mcpServer); err != nil {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil

	case TransportHTTP:
		if addr == "" {
			addr = DefaultAddr
		}
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.Start(addr)
		}()

		select {
		case <-ctx.Done():
			s.logger.Info("shutting down MCP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		}

	default:
		return fmt.Errorf("unknown transport %q (valid: stdio, http)", transport)
	}
}
