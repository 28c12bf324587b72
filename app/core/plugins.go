package core

import (
	"fmt"
	"log/slog"
)

// Plugin contributes commands to the core. Install registers them on the
// core's registry and must not be called after the routes are mounted.
type Plugin interface {
	Name() string
	Install(*Core) error
}

type SetupFunc func() Plugin

func (c *Core) InstallPlugins(p Plugin) {
	if err := p.Install(c); err != nil {
		panic(fmt.Errorf("failed to install plugin %s: %w", p.Name(), err))
	}
	c.plugins = append(c.plugins, p)
	slog.Info("plugin installed", slog.String("plugin", p.Name()))
}

// Plugins returns the installed plugin names in installation order.
func (c *Core) Plugins() []string {
	names := make([]string, 0, len(c.plugins))
	for _, p := range c.plugins {
		names = append(names, p.Name())
	}
	return names
}
