package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:          "companionctl",
		Short:        "Operate on a companion server",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a companionctl config file")
	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "Server endpoint (default http://localhost:8000)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Timeout of each request")

	root.AddCommand(rollCmd(&opts))
	root.AddCommand(campaignCmd(&opts))
	root.AddCommand(trackCmd(&opts))
	return root
}
