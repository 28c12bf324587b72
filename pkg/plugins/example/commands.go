package example

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkg-node/dkg-plugins/pkg/command"
	"github.com/dkg-node/dkg-plugins/pkg/utils"
)

type GreetInput struct {
	Name         string `json:"name" uri:"name" jsonschema:"Name of the person to greet" binding:"required"`
	Enthusiastic bool   `json:"enthusiastic,omitempty" form:"enthusiastic" jsonschema:"Shout the greeting"`
}

type StatsInput struct{}

type EchoInput struct {
	Message string `json:"message" jsonschema:"Message to echo back" binding:"required"`
}

type HealthInput struct{}

func (p *Plugin) logic(ctx context.Context) *UtilityLogic {
	return NewUtilityLogic(ctx, p.core, p.cfg)
}

func (p *Plugin) registerCommands(reg *command.Registry) {
	command.Register(reg, &command.Command[GreetInput, GreetResult]{
		Name:        "greet",
		Description: "Generate a personalized greeting message",
		Tool:        "generate_greeting",
		Method:      http.MethodGet,
		Path:        "/greeting/:name",
		Execute: func(ctx context.Context, in GreetInput) (GreetResult, error) {
			return p.logic(ctx).Greet(in.Name, in.Enthusiastic), nil
		},
		Summarize: func(_ GreetInput, out GreetResult) string {
			return out.Greeting
		},
		Render: func(_ *gin.Context, out GreetResult) gin.H {
			return gin.H{
				"greeting":  out.Greeting,
				"timestamp": out.Timestamp,
			}
		},
	})

	command.Register(reg, &command.Command[StatsInput, StatusResult]{
		Name:        "report_status",
		Description: "Get current node statistics and status",
		Tool:        "get_node_stats",
		Method:      http.MethodGet,
		Path:        "/stats",
		Execute: func(ctx context.Context, _ StatsInput) (StatusResult, error) {
			return p.logic(ctx).Status(), nil
		},
		Summarize: func(_ StatsInput, out StatusResult) string {
			return fmt.Sprintf("Node Status: %s\nPlugin: %s (v%s)\nUptime: %s\nTimestamp: %s",
				out.Status,
				out.PluginID,
				out.Version,
				utils.HumanDuration(time.Duration(out.Uptime*float64(time.Second))),
				out.Timestamp)
		},
	})

	command.Register(reg, &command.Command[EchoInput, EchoResult]{
		Name:        "echo",
		Description: "Echo back a message with character statistics",
		Tool:        "echo_message",
		Method:      http.MethodPost,
		Path:        "/echo",
		Execute: func(ctx context.Context, in EchoInput) (EchoResult, error) {
			return p.logic(ctx).Echo(in.Message), nil
		},
		Summarize: func(_ EchoInput, out EchoResult) string {
			return fmt.Sprintf("Echo: %s\nLength: %d characters\nReversed: %s\nUppercase: %s",
				out.Echo, out.Length, out.Reversed, out.Uppercase)
		},
	})

	command.Register(reg, &command.Command[HealthInput, HealthResult]{
		Name:   "health",
		Method: http.MethodGet,
		Path:   "/health",
		Execute: func(ctx context.Context, _ HealthInput) (HealthResult, error) {
			return p.logic(ctx).Health(), nil
		},
		Render: func(_ *gin.Context, out HealthResult) gin.H {
			return gin.H{
				"status":    out.Status,
				"plugin":    out.Plugin,
				"timestamp": out.Timestamp,
			}
		},
	})
}
