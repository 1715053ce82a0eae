package main

import (
	"os"

	"github.com/spf13/cobra"

	"strack/internal/config"
	"strack/internal/ui"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var apiMode bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "strack",
		Short: "Strack is a sprint tracker for small agile teams",
		Long: "Strack manages sprints, user stories, tasks, and a team roster.\n" +
			"By default it opens an interactive menu; with --api it serves the JSON API instead.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureDefaultLogger(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiMode {
				return runServer(cfg)
			}

			reg, st := openRegistry(cfg)
			menu := ui.New(reg, st, issueProvider(cfg), cfg.GitHub.StoryLabel, os.Stdin, os.Stdout, nil)
			menu.Run()
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&apiMode, "api", false, "run the HTTP API server instead of the menu")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newExportCmd(cfg),
	)

	return cmd
}
