package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dkg-node/dkg-plugins/cmd/service"
	_ "github.com/dkg-node/dkg-plugins/pkg/plugins/example"
	_ "github.com/dkg-node/dkg-plugins/pkg/plugins/publishnote"
)

func main() {
	root := &cobra.Command{
		Use:          "dkg-plugins",
		Short:        "DKG node plugins served to agents over MCP and to API clients over REST",
		SilenceUsage: true,
	}

	root.AddCommand(service.NewCommand(), service.NewStdioCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
