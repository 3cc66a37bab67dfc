package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yashrajoria/restaurant-service/database"
	"github.com/yashrajoria/restaurant-service/models"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := models.Migrate(db); err != nil {
			return err
		}
		log.Info("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
