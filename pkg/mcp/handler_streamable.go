package mcp

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/pkg/mcp/auth"
)

// MCPStreamableHandler serves the plugin tools over MCP streamable HTTP.
func MCPStreamableHandler(appCore *core.Core) gin.HandlerFunc {
	mcpServer := NewMCPServer(appCore)
	cfg := appCore.Cfg().MCP

	streamableHandler := mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			// one server for every session
			return mcpServer.server
		},
		&mcp.StreamableHTTPOptions{
			JSONResponse: cfg.JSONResponse,
			Stateless:    cfg.Stateless,
		},
	)

	slog.Info("MCP Streamable Handler initialized",
		slog.String("path", cfg.Path),
		slog.Bool("auth", cfg.AccessToken != ""),
	)

	return func(c *gin.Context) {
		slog.Debug("MCP streamable request received",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"session_id", c.Request.Header.Get("Mcp-Session-Id"),
		)

		if err := auth.ValidateRequest(c, cfg.AccessToken); err != nil {
			slog.Error("MCP auth failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"jsonrpc": "2.0",
				"error": map[string]interface{}{
					"code":    -32000,
					"message": "Authentication failed: " + err.Error(),
				},
				"id": nil,
			})
			return
		}

		streamableHandler.ServeHTTP(c.Writer, c.Request)
	}
}
