package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

var orderColumns = filter.Columns{
	"id":       "id",
	"user":     "user_id",
	"store":    "store_id",
	"email":    "email",
	"name":     "name",
	"status":   "status",
	"amount":   "amount",
	"quantity": "quantity",
	"created":  "created_at",
	"updated":  "updated_at",
}

type orderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) repo.OrderRepository {
	return &orderGormRepository{db: db}
}

// 注文作成
func (r *orderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit("Address").Create(order).Error
}

func (r *orderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return model.Order{}, notFound(err)
	}
	return o, nil
}

func (r *orderGormRepository) List(ctx context.Context, q filter.Query) ([]model.Order, int64, error) {
	return listQuery[model.Order](ctx, r.db, q, orderColumns)
}

func (r *orderGormRepository) ListAll(ctx context.Context, f *filter.Expr, sort filter.Sorts, limit int) ([]model.Order, error) {
	orders := []model.Order{}

	tx, err := applyFilter(r.db.WithContext(ctx).Model(&model.Order{}), f, orderColumns)
	if err != nil {
		return orders, err
	}
	tx, err = orderAndPage(tx, sort, filter.First(limit), orderColumns)
	if err != nil {
		return orders, err
	}
	if err := tx.Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *orderGormRepository) Count(ctx context.Context, f *filter.Expr) (int64, error) {
	return countQuery[model.Order](ctx, r.db, f, orderColumns)
}

// ステータスだけ更新
func (r *orderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	return affected(res)
}
