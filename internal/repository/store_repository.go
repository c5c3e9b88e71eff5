package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
)

// フィルタに使えるフィールド: id, user, active, slug, name, created
type StoreRepository interface {
	Create(ctx context.Context, s *model.Store) error
	FindByID(ctx context.Context, id string) (model.Store, error)
	FindBySlug(ctx context.Context, slug string) (model.Store, error)
	Update(ctx context.Context, s model.Store) error
	//商品も消す。注文は残す
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q filter.Query) ([]model.Store, int64, error)
	Count(ctx context.Context, f *filter.Expr) (int64, error)
}
