package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkg-node/dkg-plugins/app/core"
)

// MCPServer wraps the registry's server, the one every plugin tool lives on.
type MCPServer struct {
	server *mcp.Server
	core   *core.Core
}

func NewMCPServer(core *core.Core) *MCPServer {
	server := core.Registry().Server()
	server.AddReceivingMiddleware(toolCallMiddleware(core))

	return &MCPServer{
		server: server,
		core:   core,
	}
}

func (s *MCPServer) Server() *mcp.Server {
	return s.server
}

// ServeStdio serves the tools over stdin/stdout until ctx is done or the
// client disconnects.
func (s *MCPServer) ServeStdio(ctx context.Context) error {
	slog.Info("MCP stdio server started", slog.Any("tools", s.core.Registry().Tools()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// toolCallMiddleware logs and counts tool calls.
func toolCallMiddleware(core *core.Core) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			call, ok := req.(*mcp.CallToolRequest)
			if !ok {
				return next(ctx, method, req)
			}

			start := time.Now()
			res, err := next(ctx, method, req)

			failed := err != nil
			if r, ok := res.(*mcp.CallToolResult); ok && r != nil && r.IsError {
				failed = true
			}
			core.Metrics().ToolCallInc(call.Params.Name, failed)
			slog.Info("MCP tool call",
				slog.String("tool", call.Params.Name),
				slog.Bool("failed", failed),
				slog.Duration("cost", time.Since(start)),
			)
			return res, err
		}
	}
}
