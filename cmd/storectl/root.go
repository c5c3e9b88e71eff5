package main

import (
	"fmt"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/infra/db"
	"storefront/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 各サブコマンドで使う接続一式
type env struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB
}

func (e *env) close() {
	if e.db != nil {
		_ = db.Close(e.db)
	}
	_ = e.log.Sync()
}

func openEnv(envFile string) (*env, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: "console", DisableStacktrace: true})
	if err != nil {
		return nil, err
	}
	gdb, err := db.Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: gdb}, nil
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Maintenance commands for the storefront database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "read environment from this file instead of .env")

	withEnv := func(run func(cmd *cobra.Command, e *env, a *app.App) error) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(envFile)
			if err != nil {
				return err
			}
			defer e.close()

			if err := db.Migrate(e.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a, err := app.New(e.cfg, e.db, e.log)
			if err != nil {
				return err
			}
			return run(cmd, e, a)
		}
	}

	root.AddCommand(
		newMigrateCmd(withEnv),
		newSeedCmd(withEnv),
		newCartsCmd(withEnv),
	)
	return root
}

type runWithEnv = func(run func(cmd *cobra.Command, e *env, a *app.App) error) func(cmd *cobra.Command, args []string) error
