package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/app"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/internal/seeder"
	"github.com/spf13/cobra"
)

func serveCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the showroom HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.New(env.cfg, env.logger).Run(ctx)
		},
	}
}

func migrateCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply catalog schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env.cfg.DatabaseMigrationEnabled = true
			db, err := app.OpenDatabase(cmd.Context(), env.cfg, env.logger)
			if err != nil {
				return err
			}
			return db.Close()
		},
	}
}

func seedCommand(env *environment) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML catalog fixture into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := app.OpenDatabase(ctx, env.cfg, env.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			summary, err := seeder.NewSeeder(db, env.logger).LoadFile(ctx, file)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		},
	}

	cmd.Flags().StringVar(&file, "file", "db/seed/showroom.yaml", "Fixture to load")
	return cmd
}

func withServices(env *environment, cmd *cobra.Command, fn func(ctx context.Context, services app.Services) (any, error)) error {
	ctx := cmd.Context()
	db, err := app.OpenDatabase(ctx, env.cfg, env.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	out, err := fn(ctx, app.NewServices(env.cfg, db, env.logger))
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}
