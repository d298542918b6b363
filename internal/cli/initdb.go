package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskhub/internal/client"
	"github.com/sandeepkv93/taskhub/internal/storage"
)

func initDBCmd(opts *rootOptions) *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the todos table if it does not exist",
		Long: `Create the todos table if it does not exist. Existing rows are kept.

By default the configured database is opened directly. With --remote the
running server is asked to do it through POST /api/init-db.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if remote {
				msg, err := client.New(cfg.Client.BaseURL, nil).InitDB(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			}

			repo, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer repo.Close()
			if err := repo.InitSchema(ctx); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database initialized")
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the server at client.base_url instead of opening the database")
	return cmd
}
