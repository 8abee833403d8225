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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/oci-tools/compute-mcp/internal/config"
	"github.com/oci-tools/compute-mcp/internal/log"
	mcpserver "github.com/oci-tools/compute-mcp/internal/mcp/server"
	"github.com/oci-tools/compute-mcp/internal/oci"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		transport   string
		addr        string
		logLevel    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "compute-mcp",
		Short: "MCP server for OCI compute management",
		Long: `compute-mcp exposes OCI compute management as MCP tools:

  - list_compartments: all compartments in the tenancy
  - list_compute_instances: instances in a compartment by name
  - get_compute_instance: instance detail by OCID
  - get_compute_instance_by_name: instance detail by display name
  - compute_instance_action: START, STOP, or RESET an instance

Credentials come from the OCI config file (~/.oci/config); select the
profile with PROFILE_NAME and override the tenancy or region with
TENANCY_ID_OVERRIDE / REGION_ID_OVERRIDE.

The server listens on HTTP (streamable transport) by default. Use
--transport stdio for direct integration with an MCP client, for
example in ~/.config/claude/config.json:

  {
    "mcpServers": {
      "oci-compute": {
        "command": "compute-mcp",
        "args": ["--transport", "stdio"]
      }
    }
  }`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(transport, addr, logLevel, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcpserver.TransportHTTP), "MCP transport (stdio, http)")
	cmd.Flags().StringVar(&addr, "addr", mcpserver.DefaultAddr, "Listen address for the http transport")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Logging verbosity (debug, info, warn, error); overrides LOG_LEVEL")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Listen address for Prometheus metrics (disabled when empty)")

	return cmd
}

func run(transport, addr, logLevel, metricsAddr string) error {
	logCfg := log.FromEnv()
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	logger := log.New(logCfg)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	clients, err := oci.NewClients(cfg)
	if err != nil {
		return fmt.Errorf("creating OCI clients: %w", err)
	}

	srv, err := mcpserver.New(mcpserver.Config{
		Name:     "oci-compute",
		Version:  version,
		OCI:      cfg,
		Backends: clients,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		startMetricsServer(ctx, logger, metricsAddr)
	}

	return srv.Run(ctx, mcpserver.Transport(transport), addr)
}

// startMetricsServer serves Prometheus metrics on its own listener and
// shuts it down when the context is cancelled.
func startMetricsServer(ctx context.Context, logger *slog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	metricsSrv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("starting metrics server", slog.String("addr", addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", log.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", log.Error(err))
		}
	}()
}
