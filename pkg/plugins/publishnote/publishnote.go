// Package publishnote exposes the knowledge-asset gateway: publishing JSON-LD
// notes as Knowledge Assets, resolving them by UAL and querying the graph.
// Every operation is a single call to the core's DKG client.
package publishnote

import (
	"fmt"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/pkg/plugins"
)

const NAME = "publishnote"

const DEFAULT_EXPLORER_BASE_URL = "https://dkg-testnet.origintrail.io/explore?ual="

func init() {
	plugins.RegisterProvider(NAME, func() core.Plugin {
		return New()
	})
}

type Config struct {
	ExplorerBaseURL string `toml:"explorer_base_url"`
}

type customConfig struct {
	PublishNote Config `toml:"publishnote"`
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
	p.cfg = custom.PublishNote
	if p.cfg.ExplorerBaseURL == "" {
		p.cfg.ExplorerBaseURL = DEFAULT_EXPLORER_BASE_URL
	}

	p.registerCommands(c.Registry())
	return nil
}
