package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"strack/internal/config"
	"strack/internal/github"
	"strack/internal/registry"
	"strack/internal/server"
	"strack/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the strack API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	logger := slog.Default().With("component", "server")
	reg, st := openRegistry(cfg)
	srv := server.New(cfg.ListenAddr, reg, st, issueProvider(cfg), cfg.GitHub.StoryLabel, logger)
	return srv.ListenAndServe()
}

// openRegistry loads stored data from the configured directory. Any load
// failure is logged and the process starts with an empty registry; the
// next save rewrites the files whole.
func openRegistry(cfg *config.Config) (*registry.Registry, *store.Store) {
	st := store.New(cfg.DataDir)
	reg, err := st.Load()
	if err != nil {
		slog.Warn("load stored data, starting empty", "dir", cfg.DataDir, "error", err)
		reg = registry.New()
	}
	return reg, st
}

// issueProvider picks the live GitHub client when a token is configured,
// else the canned mock set.
func issueProvider(cfg *config.Config) github.Provider {
	if cfg.GitHub.Token != "" {
		return github.NewClient(cfg.GitHub.Token)
	}
	return github.MockProvider{}
}
