package cmd

import (
	"github.com/spf13/cobra"

	"github.com/basit/tasklist-backend/initializers"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := initializers.ConnectToDatabase(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := initializers.Migrate(db); err != nil {
			return err
		}
		logger.Info("Database migrated successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
