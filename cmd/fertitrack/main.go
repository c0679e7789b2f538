package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fertitrack/fertitrack/internal/config"
	"github.com/fertitrack/fertitrack/internal/database"
	"github.com/fertitrack/fertitrack/internal/logging"
)

// app carries what every subcommand needs once the root has initialised.
type app struct {
	configPath string
	cfg        config.Config
	log        *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "fertitrack",
		Short:        "Fertility tracking API server and tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("FERTITRACK_CONFIG"), "path to a YAML config file")

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newSeedCmd(a),
		newTokenCmd(a),
	)
	return root
}

func (a *app) init() error {
	envFile := config.LoadDotenv()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	if envFile != "" {
		logger.Info("env loaded", zap.String("path", envFile))
	}
	a.cfg, a.log = cfg, logger
	return nil
}

// openDB connects and brings the schema up to date.
func (a *app) openDB(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Open(ctx, a.cfg.Database, a.log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
