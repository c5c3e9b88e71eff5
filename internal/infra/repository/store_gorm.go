package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

var storeColumns = filter.Columns{
	"id":      "id",
	"user":    "user_id",
	"name":    "name",
	"slug":    "slug",
	"plan":    "plan",
	"active":  "active",
	"created": "created_at",
	"updated": "updated_at",
}

type storeGormRepository struct {
	db *gorm.DB
}

// DI
func NewStoreGormRepository(db *gorm.DB) repo.StoreRepository {
	return &storeGormRepository{db: db}
}

func (r *storeGormRepository) Create(ctx context.Context, s *model.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *storeGormRepository) FindByID(ctx context.Context, id string) (model.Store, error) {
	var s model.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return model.Store{}, notFound(err)
	}
	return s, nil
}

func (r *storeGormRepository) FindBySlug(ctx context.Context, slug string) (model.Store, error) {
	var s model.Store
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&s).Error; err != nil {
		return model.Store{}, notFound(err)
	}
	return s, nil
}

// 名前・slug・説明などを保存
func (r *storeGormRepository) Update(ctx context.Context, s model.Store) error {
	res := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", s.ID).
		Select("name", "slug", "description", "plan", "product_limit", "tag_limit", "variant_limit", "active").
		Updates(&s)
	return affected(res)
}

// ストアと商品を削除
func (r *storeGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&model.Product{}).Error; err != nil {
			return err
		}
		return affected(tx.Where("id = ?", id).Delete(&model.Store{}))
	})
}

func (r *storeGormRepository) List(ctx context.Context, q filter.Query) ([]model.Store, int64, error) {
	return listQuery[model.Store](ctx, r.db, q, storeColumns)
}

func (r *storeGormRepository) Count(ctx context.Context, f *filter.Expr) (int64, error) {
	return countQuery[model.Store](ctx, r.db, f, storeColumns)
}
