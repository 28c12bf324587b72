package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/app/response"
	"github.com/dkg-node/dkg-plugins/pkg/errors"
	"github.com/dkg-node/dkg-plugins/pkg/i18n"
	"github.com/dkg-node/dkg-plugins/pkg/safe"
	"github.com/dkg-node/dkg-plugins/pkg/utils"
)

const REQUEST_ID_HEADER = "X-Request-Id"

func I18n() gin.HandlerFunc {
	var allowList []string
	for k := range i18n.ALLOW_LANG {
		allowList = append(allowList, k)
	}
	l := i18n.NewLocalizer(allowList...)

	return response.ProvideResponseLocalizer(l)
}

// RequestID reuses the caller's X-Request-Id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(REQUEST_ID_HEADER)
		if id == "" {
			id = utils.GenUniqIDStr()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(REQUEST_ID_HEADER, id)
	}
}

// Recovery turns a panic anywhere in the handler chain into a 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer safe.Recover("middleware.Recovery", func(r any) {
			response.APIError(c, errors.New("middleware.Recovery", i18n.ERROR_INTERNAL, fmt.Errorf("panic: %v", r)))
		})
		c.Next()
	}
}

func Cors() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", REQUEST_ID_HEADER, "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposeHeaders:    []string{"Content-Length", REQUEST_ID_HEADER, "Mcp-Session-Id"},
		AllowCredentials: false,
	})
}

// Metrics times every request by route and counts failed ones.
func Metrics(appCore *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := c.FullPath()
		if api == "" {
			api = "unmatched"
		}
		timer := appCore.Metrics().ApiResponseTimer(api)
		c.Next()
		timer.ObserveDuration()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			appCore.Metrics().ApiErrorInc(c.Request.Method, api, status)
		}
	}
}

func NotFound(c *gin.Context) {
	response.APIError(c, errors.New("middleware.NotFound", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound))
}
