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
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/oci-tools/compute-mcp/internal/log"
)

// toolFunc is the inner shape of a tool implementation: it returns the
// payload to serialize, or an error whose text becomes the uniform
// error body. Handlers never touch the MCP result types directly.
type toolFunc func(ctx context.Context, request mcp.CallToolRequest) (any, error)

// handle wraps a toolFunc in the single boundary layer: rate limiting,
// request-id logging, metrics, and conversion of any outcome into JSON
// text content. Errors are returned as a {"error": "<message>"} body so
// callers only ever need to parse JSON and check for the "error" key.
func (s *Server) handle(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := log.WithRequestID(s.logger, uuid.NewString()).
			With(slog.String(log.ToolKey, name))

		if !s.limiter.AllowCall() {
			logger.Warn("tool call rate limited")
			observeTool(name, "rate_limited", 0)
			return errorJSON("Rate limit exceeded. Please try again later."), nil
		}

		start := time.Now()
		payload, err := fn(ctx, request)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("tool call failed",
				log.Error(err),
				slog.Int64(log.DurationKey, elapsed.Milliseconds()))
			observeTool(name, "error", elapsed)
			return errorJSON(err.Error()), nil
		}

		data, merr := json.MarshalIndent(payload, "", "  ")
		if merr != nil {
			logger.Error("tool result not serializable", log.Error(merr))
			observeTool(name, "error", elapsed)
			return errorJSON("Failed to encode result: " + merr.Error()), nil
		}

		logger.Info("tool call completed",
			slog.Int64(log.DurationKey, elapsed.Milliseconds()))
		observeTool(name, "ok", elapsed)
		return textResponse(string(data)), nil
	}
}

// errorJSON builds the uniform error body. The result is ordinary text
// content, not an MCP error, keeping the tool-calling contract uniform.
func errorJSON(message string) *mcp.CallToolResult {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		// map[string]string cannot fail to marshal; guard anyway.
		return textResponse(`{"error": "internal serialization failure"}`)
	}
	return textResponse(string(data))
}

// textResponse wraps a string as MCP text content.
func textResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}
