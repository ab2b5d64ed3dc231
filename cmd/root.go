package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/basit/tasklist-backend/initializers"
)

var (
	cfg    *initializers.Config
	logger *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tasklists",
	Short: "Shared task lists over GraphQL",
	Long: `tasklists serves a GraphQL API for creating task lists, sharing them
with other users and tracking the to-dos inside them.

Configuration is read from the environment (and a .env file when present).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = initializers.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger = initializers.NewLogger(cfg.LogLevel)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
