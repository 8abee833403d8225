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
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compute_mcp_tool_calls_total",
			Help: "Total MCP tool invocations by tool and outcome",
		},
		[]string{"tool", "status"},
	)

	toolDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compute_mcp_tool_duration_seconds",
			Help:    "Duration of MCP tool invocations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"tool"},
	)
)

// observeTool records one tool invocation. Rate-limited calls carry no
// meaningful duration and are counted only.
func observeTool(tool, status string, duration time.Duration) {
	toolCalls.WithLabelValues(tool, status).Inc()
	if status != "rate_limited" {
		toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
	}
}
