package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

var productColumns = filter.Columns{
	"id":          "id",
	"name":        "name",
	"store":       "store_id",
	"category":    "category_id",
	"subcategory": "subcategory_id",
	"price":       "price",
	"rating":      "rating",
	"inventory":   "inventory",
	"active":      "active",
	"created":     "created_at",
	"updated":     "updated_at",
}

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 絞り込み/並び順/ページング付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q filter.Query) ([]model.Product, int64, error) {
	return listQuery[model.Product](ctx, r.db, q, productColumns)
}

func (r *ProductGormRepository) Count(ctx context.Context, f *filter.Expr) (int64, error) {
	return countQuery[model.Product](ctx, r.db, f, productColumns)
}

// IDで商品を取得（ストア込み）
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Store").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return model.Product{}, notFound(err)
	}
	return p, nil
}

// 商品作成
func (r *ProductGormRepository) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Store").Create(p).Error
}

// 商品更新（ストアは変えない）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Select("name", "description", "images", "category_id", "subcategory_id", "price", "inventory", "active").
		Updates(&p)
	return affected(res)
}

func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}))
}

func (r *ProductGormRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("rating", rating)
	return affected(res)
}

var _ repo.ProductRepository = (*ProductGormRepository)(nil)
