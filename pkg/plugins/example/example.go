// Package example provides the node utility commands: greeting, node status,
// echo and a health probe.
package example

import (
	"fmt"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/pkg/plugins"
)

const NAME = "example"

const (
	DEFAULT_VERSION   = "1.0.0"
	DEFAULT_PLUGIN_ID = "example-plugin"
)

func init() {
	plugins.RegisterProvider(NAME, func() core.Plugin {
		return New()
	})
}

type Config struct {
	Version  string `toml:"version"`
	PluginID string `toml:"plugin_id"`
}

type customConfig struct {
	Example Config `toml:"example"`
}

var _ core.Plugin = (*Plugin)(nil)

type Plugin struct {
	core *core.Core
	cfg  Config
}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return NAME
}

func (p *Plugin) Install(c *core.Core) error {
	p.core = c

	var custom customConfig
	if err := c.Cfg().LoadCustomConfig(&custom); err != nil {
		return fmt.Errorf("Failed to install custom config, %w", err)
	}
	p.cfg = custom.Example
	if p.cfg.Version == "" {
		p.cfg.Version = DEFAULT_VERSION
	}
	if p.cfg.PluginID == "" {
		p.cfg.PluginID = DEFAULT_PLUGIN_ID
	}

	p.registerCommands(c.Registry())
	return nil
}
