package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alloylab/config"
	"github.com/alloylab/database"
)

var copyDataCmd = &cobra.Command{
	Use:   "copy-data",
	Short: "Copy all records from one database to another",
	Long: `Copy users, experiments and compositions from a source database into a
target database, preserving ids. The target schema is migrated first.

URLs default to SOURCE_DATABASE_URL and TARGET_DATABASE_URL.

Examples:
  alloylab copy-data --source-driver sqlite --source alloylab.db \
    --target postgres://lab:secret@db:5432/alloylab`,
	RunE: runCopyData,
}

var copyFlags struct {
	source       string
	target       string
	sourceDriver string
	targetDriver string
}

func init() {
	f := copyDataCmd.Flags()
	f.StringVar(&copyFlags.source, "source", config.GetEnv("SOURCE_DATABASE_URL", ""), "Source database URL")
	f.StringVar(&copyFlags.target, "target", config.GetEnv("TARGET_DATABASE_URL", ""), "Target database URL")
	f.StringVar(&copyFlags.sourceDriver, "source-driver", "", "Source driver (defaults to database.driver)")
	f.StringVar(&copyFlags.targetDriver, "target-driver", "", "Target driver (defaults to database.driver)")
}

func runCopyData(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(false)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if copyFlags.source == "" || copyFlags.target == "" {
		return errors.New("both --source and --target are required")
	}

	sourceCfg := cfg.Database
	sourceCfg.URL = copyFlags.source
	if copyFlags.sourceDriver != "" {
		sourceCfg.Driver = copyFlags.sourceDriver
	}
	targetCfg := cfg.Database
	targetCfg.URL = copyFlags.target
	if copyFlags.targetDriver != "" {
		targetCfg.Driver = copyFlags.targetDriver
	}

	source, err := database.NewDBConnection("source", sourceCfg, log)
	if err != nil {
		return err
	}
	defer source.Close()

	target, err := database.NewDBConnection("target", targetCfg, log)
	if err != nil {
		return err
	}
	defer target.Close()

	// Ensure target database schema is migrated
	if err := target.Migrate(); err != nil {
		return err
	}
	if err := database.CopyData(source, target); err != nil {
		return err
	}

	log.Info("Data copy completed")
	return nil
}

// withDefaultURL fills the URL from the driver default so NewDBConnection
// accepts a sqlite setup without DATABASE_URL.
func withDefaultURL(cfg config.DatabaseConfig) config.DatabaseConfig {
	cfg.URL = cfg.DSN()
	return cfg
}
