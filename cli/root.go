// Package cli wires the alloylab commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alloylab/config"
	"github.com/alloylab/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "alloylab",
	Short: "Laboratory experiment tracking service",
	Long: `alloylab records metallurgical experiments and reports success rates
per operator and time window.

Configuration is read from config.yaml (see --config) with environment
variable overrides. A .env file in the working directory is loaded first.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to the YAML config file (default $ALLOYLAB_CONFIG or config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(copyDataCmd)
}

// setup loads configuration and builds the logger. Commands that serve
// requests pass validate so a missing JWT secret fails at startup.
func setup(validate bool) (*config.Config, *zap.Logger, error) {
	config.LoadEnv()
	configPath = resolveConfigPath(configPath)

	load := config.Read
	if validate {
		load = config.Load
	}
	cfg, err := load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// resolveConfigPath applies the default after .env has been loaded so the
// file can set ALLOYLAB_CONFIG.
func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	return config.GetEnv("ALLOYLAB_CONFIG", "config.yaml")
}
