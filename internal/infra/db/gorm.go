package db

import (
	"fmt"

	"storefront/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlxから使うsqlite3ドライバ
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: newGormLogger(log),
		// 商品削除後もカート・注文は残すのでFKは張らない
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(cfg.SQLitePath+"?_busy_timeout=5000"), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return gdb, nil
	case config.DriverPostgres:
		gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return gdb, nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
}

// OpenSQLite はテスト・ローカル用。":memory:" も可。
func OpenSQLite(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Discard,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// 同じメモリDBを共有するため1本に絞る
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// SQLX は同じ接続プールをsqlxで包む（集計クエリ用）
func SQLX(gdb *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	driver := "pgx"
	if gdb.Dialector.Name() == "sqlite" {
		driver = "sqlite3"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}

func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
