package main

import (
	"github.com/Gobusters/ectologger"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/config"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/logging"
	"github.com/spf13/cobra"
)

// environment is populated before any subcommand runs.
type environment struct {
	envFile string
	cfg     *config.Config
	logger  ectologger.Logger
	sync    func()
}

func newRootCommand() *cobra.Command {
	env := &environment{}

	root := &cobra.Command{
		Use:           "showroom",
		Short:         "Digital showroom catalog API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(env.envFile)
			if err != nil {
				return err
			}
			logger, sync, err := logging.New(cfg.AppName, cfg.LogLevel, cfg.PrettyLogs)
			if err != nil {
				return err
			}
			env.cfg, env.logger, env.sync = cfg, logger, sync
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.sync != nil {
				env.sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&env.envFile, "env-file", ".env", "Path to an env file loaded before reading the environment")

	root.AddCommand(
		serveCommand(env),
		migrateCommand(env),
		seedCommand(env),
		resolveCommand(env),
		sceneCommand(env),
		productCommand(env),
	)
	return root
}
