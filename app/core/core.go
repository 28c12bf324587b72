package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dkg-node/dkg-plugins/pkg/command"
	"github.com/dkg-node/dkg-plugins/pkg/dkg"
)

const MCP_SERVER_NAME = "dkg-plugins-mcp"

type Core struct {
	cfg       CoreConfig
	startedAt time.Time
	logWriter io.Writer

	dkg        dkg.Client
	registry   *command.Registry
	httpEngine *gin.Engine

	metrics *Metrics
	limiter *Limiter
	tracing func(context.Context) error

	plugins []Plugin
}

type Option func(*Core)

// WithDKGClient hands the host's knowledge-graph client to the core. Without
// it the core talks to the node configured under [dkg].
func WithDKGClient(c dkg.Client) Option {
	return func(core *Core) {
		core.dkg = c
	}
}

// WithLogWriter sends logs to w instead of stdout. Ignored when log.path is set.
func WithLogWriter(w io.Writer) Option {
	return func(core *Core) {
		core.logWriter = w
	}
}

func MustSetupCore(cfg CoreConfig, opts ...Option) *Core {
	cfg.applyDefaults()

	engine := gin.New()
	// UALs carry slashes, route params must match the escaped form
	engine.UseRawPath = true

	core := &Core{
		cfg:        cfg,
		startedAt:  time.Now(),
		logWriter:  os.Stdout,
		httpEngine: engine,
		limiter:    NewLimiter(),
		registry: command.NewRegistry(&mcp.Implementation{
			Name:    MCP_SERVER_NAME,
			Title:   "DKG Node Plugins",
			Version: cfg.Version,
		}),
	}

	for _, opt := range opts {
		opt(core)
	}

	{
		writer := core.logWriter
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28,   //days
				Compress:   true, // disabled by default
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	shutdown, err := SetupTracing(context.Background(), cfg.Tracing, cfg.Version, core.logWriter)
	if err != nil {
		panic(err)
	}
	core.tracing = shutdown
	core.metrics = NewMetrics("dkg", "plugins")

	if core.dkg == nil {
		core.dkg = dkg.NewHTTPClient(cfg.DKG.ClientConfig(), dkg.WithObserver(core.metrics))
	}

	return core
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) DKG() dkg.Client {
	return s.dkg
}

func (s *Core) Registry() *command.Registry {
	return s.registry
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

// Uptime is the time elapsed since the core was set up.
func (s *Core) Uptime() time.Duration {
	return time.Since(s.startedAt)
}

// Shutdown flushes pending telemetry.
func (s *Core) Shutdown(ctx context.Context) error {
	if s.tracing == nil {
		return nil
	}
	return s.tracing(ctx)
}
