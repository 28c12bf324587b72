// Package command defines an operation once and serves it on two surfaces:
// as an MCP tool for agents and as a REST route for API clients.
//
// A Command's input struct is the declared shape shared by both surfaces:
//
//	type EchoInput struct {
//		Message string `json:"message" jsonschema:"text to echo" binding:"required"`
//	}
//
// `json` names the field (omitempty marks it optional for agents), `jsonschema`
// carries the description agents see, `uri`/`form` map REST path and query
// parameters, and `binding` holds the validation rules enforced before Execute
// runs, whichever surface the call came from.
package command

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkg-node/dkg-plugins/app/response"
	"github.com/dkg-node/dkg-plugins/pkg/errors"
	"github.com/dkg-node/dkg-plugins/pkg/i18n"
	"github.com/dkg-node/dkg-plugins/pkg/safe"
)

type Command[In, Out any] struct {
	// Name identifies the operation inside the registry.
	Name        string
	Description string

	// Tool is the MCP tool name. Empty keeps the command off the tool surface.
	Tool string

	// Method and Path declare the REST route. Empty keeps the command off the REST surface.
	Method      string
	Path        string
	Middlewares []gin.HandlerFunc

	Execute func(ctx context.Context, in In) (Out, error)

	// Summarize renders a successful result for agents.
	Summarize func(in In, out Out) string
	// Render shapes a successful result into the REST body; "success" is added by the envelope.
	// c carries the request, e.g. for localizing messages.
	Render func(c *gin.Context, out Out) gin.H
}

// Invoke validates in and runs the operation. Both surface adapters go through
// Invoke, so they observe the same behaviour and the same errors.
func (c *Command[In, Out]) Invoke(ctx context.Context, in In) (out Out, err error) {
	if err = Validate(in); err != nil {
		return out, errors.Trace("command."+c.Name+".Validate", err)
	}

	defer safe.Recover("command."+c.Name, func(r any) {
		var zero Out
		out = zero
		err = errors.New("command."+c.Name+".Execute.panic", i18n.ERROR_INTERNAL, fmt.Errorf("panic: %v", r))
	})

	return c.Execute(ctx, in)
}

func (c *Command[In, Out]) summarize(in In, out Out) string {
	if c.Summarize != nil {
		return c.Summarize(in, out)
	}
	return fmt.Sprintf("%s completed", c.Name)
}

func (c *Command[In, Out]) render(ctx *gin.Context, out Out) gin.H {
	if c.Render != nil {
		return c.Render(ctx, out)
	}
	return gin.H{"data": out}
}

// toolHandler adapts the command to the MCP SDK. The SDK has already checked
// the arguments against the schema inferred from In when this runs.
func (c *Command[In, Out]) toolHandler(l i18n.Localizer) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		out, err := c.Invoke(ctx, in)
		if err != nil {
			slog.Error("tool call failed",
				slog.String("tool", c.Tool),
				slog.String("error", err.Error()),
			)
			var zero Out
			// returned errors are reported to the agent as an isError result
			return nil, zero, stderrors.New("Error: " + response.Message(l, i18n.DEFAULT_LANG, err))
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: c.summarize(in, out)},
			},
		}, out, nil
	}
}

func (c *Command[In, Out]) restHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var in In
		if err := bindRequest(ctx, &in); err != nil {
			response.APIError(ctx, errors.Trace("command."+c.Name+".bindRequest", err))
			return
		}

		out, err := c.Invoke(ctx.Request.Context(), in)
		if err != nil {
			response.APIError(ctx, err)
			return
		}

		response.APISuccess(ctx, c.render(ctx, out))
	}
}

func routeKey(method, path string) string {
	if method == "" {
		method = http.MethodGet
	}
	return method + " " + path
}
