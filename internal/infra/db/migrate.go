package db

import (
	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

// Migrate は全テーブルを作成・更新する
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Subcategory{},
		&model.Store{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Address{},
		&model.Order{},
		&model.Notification{},
		&model.AuditLog{},
	)
}
