package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/dkg-node/dkg-plugins/app/core"
)

// HttpSrv bundles what the router needs to mount the HTTP surface.
type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}

func NewHttpSrv(core *core.Core) *HttpSrv {
	return &HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
}
