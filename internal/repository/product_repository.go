package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
)

// 商品の永続化（保存・取得）だけを約束。
// フィルタに使えるフィールド: id, name, store, category, subcategory, price, rating, inventory, active, created
type ProductRepository interface {
	List(ctx context.Context, q filter.Query) ([]model.Product, int64, error)
	Count(ctx context.Context, f *filter.Expr) (int64, error)
	//ストア込み
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error
	UpdateRating(ctx context.Context, id string, rating float64) error
}
