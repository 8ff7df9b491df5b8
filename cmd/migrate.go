package cmd

import (
	"quill/database"
	"quill/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and purge expired sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		purged, err := services.NewSessionService(db, cfg.SessionTTL).CleanupExpiredSessions(cmd.Context())
		if err != nil {
			return err
		}

		logger.Info("database migrated", zap.String("driver", cfg.DBDriver), zap.Int64("expired_sessions_purged", purged))
		return nil
	},
}
