package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskhub/internal/config"
)

type rootOptions struct {
	configPath string
	version    string
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.configPath)
}

// NewRootCommand wires every subcommand under a fresh root.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{version: version}
	root := &cobra.Command{
		Use:   "taskhub",
		Short: "taskhub - task list server and terminal client",
		Long: `taskhub serves a small task list over HTTP/JSON and ships clients for it.

Run "taskhub serve" to start the API, then "taskhub tui" or "taskhub board"
against it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" when present)")

	root.AddCommand(serveCmd(opts))
	root.AddCommand(initDBCmd(opts))
	root.AddCommand(tuiCmd(opts))
	root.AddCommand(boardCmd(opts))
	root.AddCommand(healthCmd(opts))
	root.AddCommand(configCmd(opts))
	root.AddCommand(versionCmd(opts))
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func versionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskhub %s\n", opts.version)
		},
	}
}
