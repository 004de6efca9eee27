package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/pgvec/config"
	"github.com/viant/pgvec/logging"
)

type envKey struct{}

// env carries the resolved configuration to subcommands.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
}

func envFrom(cmd *cobra.Command) (*env, error) {
	e, ok := cmd.Context().Value(envKey{}).(*env)
	if !ok {
		return nil, fmt.Errorf("configuration not found in context")
	}
	return e, nil
}

// NewRootCmd builds the pgvec command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pgvec",
		Short: "pgvec - pgvector binary codec tool",
		Long: `pgvec encodes and decodes dense (vector) and sparse (sparsevec)
float32 vectors in the pgvector binary wire format.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				loaded, err := config.LoadConfig(path)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
			}
			if cmd.Flags().Changed("database") {
				cfg.Database, _ = cmd.Flags().GetString("database")
			}
			logger, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, envKey{}, &env{cfg: cfg, logger: logger}))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("database", ":memory:", "SQLite DSN used by roundtrip")

	rootCmd.AddCommand(newEncodeCmd(), newDecodeCmd(), newRoundtripCmd())
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
