package cli

import (
	"github.com/spf13/cobra"

	"github.com/alloylab/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	conn, err := database.NewDBConnection("primary", withDefaultURL(cfg.Database), log)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Migrate(); err != nil {
		return err
	}
	log.Info("Database schema is up to date")
	return nil
}
