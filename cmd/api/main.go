package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/infra/db"
	"storefront/internal/logger"
	"storefront/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Must(logger.Config{Level: "info"}).Fatal("invalid config", zap.Error(err))
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Development: !cfg.IsProd(),
	})
	if err != nil {
		logger.Must(logger.Config{Level: "info"}).Fatal("invalid logger config", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}
	log.Info("connected to database", zap.String("driver", cfg.DBDriver))

	a, err := app.New(cfg, gormDB, log)
	if err != nil {
		log.Fatal("wire app failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	if err := server.Run(ctx, a.Echo, ":"+cfg.Port, log); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
