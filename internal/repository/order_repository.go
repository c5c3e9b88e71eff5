package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
)

// フィルタに使えるフィールド: id, user, store, email, status, amount, quantity, name, created
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	//住所込み
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	List(ctx context.Context, q filter.Query) ([]model.Order, int64, error)
	//件数を数えずに最大limit件
	ListAll(ctx context.Context, f *filter.Expr, sort filter.Sorts, limit int) ([]model.Order, error)
	Count(ctx context.Context, f *filter.Expr) (int64, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// 集計用（sqlx）
type SalesRepository interface {
	//日別売上。キャンセルを除き新しい日付順
	DailySales(ctx context.Context, storeID string) ([]model.DailySales, error)
	CountCustomers(ctx context.Context, storeID string) (int64, error)
}
