package cmd

import (
	"context"

	"github.com/spf13/cobra"

	mongodb "github.com/99minutos/identity-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/identity-service/pkg/logger"
)

// migrateCmd creates the credential collection indexes.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the credential store indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootstrap(cmd)
		if err != nil {
			return err
		}

		client, db, err := mongodb.Connect(cmd.Context(), mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongodb.NewCredentialRepository(db).EnsureIndexes(cmd.Context()); err != nil {
			return err
		}

		log := logger.Get()
		log.Info().Str("database", cfg.Mongo.Database).Msg("credential indexes ensured")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
