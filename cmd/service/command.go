package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/cmd/service/handler"
	"github.com/dkg-node/dkg-plugins/pkg/mcp"
	"github.com/dkg-node/dkg-plugins/pkg/plugins"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	ConfigPath string
	Plugins    []string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init service by given config")
	flagSet.StringSliceVarP(&o.Plugins, "plugins", "p", nil, "plugins to install, overrides [plugins] enabled")
}

func (o *Options) setup(coreOpts ...core.Option) *core.Core {
	app := core.MustSetupCore(core.MustLoadBaseConfig(o.ConfigPath), coreOpts...)
	names := app.Cfg().Plugins.Enabled
	if len(o.Plugins) > 0 {
		names = o.Plugins
	}
	plugins.Setup(app.InstallPlugins, names...)
	return app
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "serve the plugin commands over REST and MCP streamable HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	app := opts.setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, app)
}

func serve(ctx context.Context, app *core.Core) error {
	setupHttpRouter(handler.NewHttpSrv(app))

	srv := &http.Server{
		Addr:    app.Cfg().Addr,
		Handler: app.HttpEngine(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.Any("plugins", app.Plugins()),
			slog.Any("commands", app.Registry().Commands()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return app.Shutdown(shutdownCtx)
}

func NewStdioCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "serve the plugin tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunStdio(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func RunStdio(opts *Options) error {
	// stdout carries the protocol
	app := opts.setup(core.WithLogWriter(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := mcp.NewMCPServer(app).ServeStdio(ctx)
	if shutdownErr := app.Shutdown(context.Background()); err == nil {
		err = shutdownErr
	}
	return err
}
