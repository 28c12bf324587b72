package command

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dkg-node/dkg-plugins/pkg/i18n"
)

// Route describes a REST route contributed by a command.
type Route struct {
	Command  string
	Method   string
	Path     string
	handlers []gin.HandlerFunc
}

// Registry collects commands once at startup and exposes them on both
// surfaces. Names, tools and routes are unique for the registry's lifetime.
type Registry struct {
	mu        sync.Mutex
	server    *mcp.Server
	localizer i18n.Localizer
	names     []string
	tools     []string
	routes    []Route
	taken     map[string]string
	mounted   bool
}

func NewRegistry(impl *mcp.Implementation) *Registry {
	return &Registry{
		server:    mcp.NewServer(impl, nil),
		localizer: i18n.Default(),
		taken:     make(map[string]string),
	}
}

// Register adds c to r. It panics when c reuses a name, tool or route already
// registered, or when the routes were already mounted.
func Register[In, Out any](r *Registry, c *Command[In, Out]) {
	if c.Name == "" || c.Execute == nil {
		panic("command: Name and Execute are required")
	}
	if c.Tool == "" && c.Path == "" {
		panic(fmt.Sprintf("command %q is exposed on no surface", c.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mounted && c.Path != "" {
		panic(fmt.Sprintf("command %q registered after routes were mounted", c.Name))
	}
	r.claim("command:"+c.Name, c.Name)
	if c.Tool != "" {
		r.claim("tool:"+c.Tool, c.Name)
	}
	if c.Path != "" {
		r.claim("route:"+routeKey(c.Method, c.Path), c.Name)
	}

	r.names = append(r.names, c.Name)

	if c.Tool != "" {
		mcp.AddTool(r.server, &mcp.Tool{
			Name:        c.Tool,
			Description: c.Description,
		}, c.toolHandler(r.localizer))
		r.tools = append(r.tools, c.Tool)
	}

	if c.Path != "" {
		method := strings.ToUpper(c.Method)
		if method == "" {
			method = http.MethodGet
		}
		handlers := append(append([]gin.HandlerFunc{}, c.Middlewares...), c.restHandler())
		r.routes = append(r.routes, Route{
			Command:  c.Name,
			Method:   method,
			Path:     c.Path,
			handlers: handlers,
		})
	}

	slog.Debug("command registered",
		slog.String("command", c.Name),
		slog.String("tool", c.Tool),
		slog.String("route", routeKey(c.Method, c.Path)),
	)
}

func (r *Registry) claim(key, name string) {
	if owner, ok := r.taken[key]; ok {
		panic(fmt.Sprintf("command %q: %s already registered by %q", name, key, owner))
	}
	r.taken[key] = name
}

// Server returns the MCP server every tool is registered on.
func (r *Registry) Server() *mcp.Server {
	return r.server
}

// Commands returns command names in registration order.
func (r *Registry) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

// Tools returns tool names in registration order.
func (r *Registry) Tools() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.tools...)
}

func (r *Registry) Routes() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Route(nil), r.routes...)
}

// Mount installs every REST route on router, in registration order.
func (r *Registry) Mount(router gin.IRoutes) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, route := range r.routes {
		router.Handle(route.Method, route.Path, route.handlers...)
	}
	r.mounted = true
}
