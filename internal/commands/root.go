package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"jakca/internal/config"
	"jakca/internal/database"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "jakca",
	Short: "JAKCA cafe discovery backend",
	Long: `JAKCA finds study- and work-friendly cafes near the caller, merging
reviewed cafes from the database with live Kakao Local results.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if envFile != "" {
			config.LoadFile(envFile)
			return
		}
		config.Load()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load instead of ./.env")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(indexesCmd)
	rootCmd.AddCommand(recomputeCmd)
}

// openDatabase connects using the loaded configuration.
func openDatabase(needJWT bool) (*mongo.Client, *mongo.Database, error) {
	if err := config.AppEnv.Validate(needJWT); err != nil {
		return nil, nil, err
	}
	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(config.AppEnv.DBName)
	log.Println("[DB] [INFO] MongoDB connected to:", db.Name())
	return client, db, nil
}

func disconnect(client *mongo.Client) {
	if err := client.Disconnect(context.Background()); err != nil {
		log.Println("[DB] [WARN] disconnect failed:", err)
	}
}
