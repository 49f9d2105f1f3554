package commands

import (
	"log"

	"github.com/spf13/cobra"

	"jakca/internal/database"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create or update MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, db, err := openDatabase(false)
		if err != nil {
			return err
		}
		defer disconnect(client)

		if err := database.EnsureAll(db); err != nil {
			return err
		}
		log.Println("[DB] [INFO] indexes are up to date")
		return nil
	},
}
