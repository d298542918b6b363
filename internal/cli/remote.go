package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskhub/internal/client"
	"github.com/sandeepkv93/taskhub/internal/session"
	"github.com/sandeepkv93/taskhub/internal/update"
	"github.com/sandeepkv93/taskhub/internal/views"
)

const (
	formatText = "text"
	formatHTML = "html"
)

func (o *rootOptions) apiClient(server string) (*client.Client, error) {
	if server != "" {
		return client.New(server, nil), nil
	}
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.Client.BaseURL, nil), nil
}

func tuiCmd(opts *rootOptions) *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.apiClient(server)
			if err != nil {
				return err
			}
			program := tea.NewProgram(update.NewModel(api, time.Local), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "API base URL (overrides client.base_url)")
	return cmd
}

func boardCmd(opts *rootOptions) *cobra.Command {
	var (
		server string
		format string
	)
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the task board once",
		Long: `Fetch the task list and print it as plain text or as an HTML page.

Examples:
  taskhub board
  taskhub board --format html > board.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatHTML {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatHTML)
			}
			api, err := opts.apiClient(server)
			if err != nil {
				return err
			}
			s := session.New(api)
			if err := s.Load(cmd.Context()); err != nil {
				return err
			}
			board := views.BuildBoard(s.Cache().Tasks, time.Local)
			out := cmd.OutOrStdout()
			if format == formatHTML {
				return views.RenderHTMLPage(out, "taskhub", board)
			}
			fmt.Fprintln(out, views.RenderBoardText(board))
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "API base URL (overrides client.base_url)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text or html")
	return cmd
}

func healthCmd(opts *rootOptions) *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the server and its database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := opts.apiClient(server)
			if err != nil {
				return err
			}
			h, err := api.Health(cmd.Context())
			out := cmd.OutOrStdout()
			if h.Status != "" {
				fmt.Fprintf(out, "status: %s\ndatabase: %s\n", h.Status, h.Database)
				if h.Version != "" {
					fmt.Fprintf(out, "version: %s\nenvironment: %s\n", h.Version, h.Environment)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "API base URL (overrides client.base_url)")
	return cmd
}
