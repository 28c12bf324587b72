package service

import (
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/cmd/service/handler"
	"github.com/dkg-node/dkg-plugins/cmd/service/middleware"
	"github.com/dkg-node/dkg-plugins/pkg/mcp"
	"github.com/dkg-node/dkg-plugins/pkg/metrics"
)

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.Use(middleware.Recovery(), middleware.RequestID())
	s.Engine.Use(middleware.I18n())
	s.Engine.Use(middleware.Cors())
	if s.Core.Cfg().Tracing.Enabled {
		s.Engine.Use(otelgin.Middleware(core.TRACING_SERVICE_NAME))
	}
	s.Engine.Use(middleware.Metrics(s.Core))

	s.Engine.NoRoute(middleware.NotFound)
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())
	s.Engine.Any(s.Core.Cfg().MCP.Path, mcp.MCPStreamableHandler(s.Core))

	// plugin commands
	s.Core.Registry().Mount(s.Engine)
}
