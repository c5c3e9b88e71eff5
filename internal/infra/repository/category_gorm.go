package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type categoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryGormRepository{db: db}
}

// 名前順で全件
func (r *categoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	items := []model.Category{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *categoryGormRepository) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(tx *gorm.DB) *gorm.DB { return tx.Order("name asc") }).
		Where("slug = ?", slug).
		First(&c).Error
	if err != nil {
		return model.Category{}, notFound(err)
	}
	return c, nil
}

func (r *categoryGormRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return model.Category{}, notFound(err)
	}
	return c, nil
}

func (r *categoryGormRepository) ListSubcategories(ctx context.Context, categoryID string) ([]model.Subcategory, error) {
	items := []model.Subcategory{}
	tx := r.db.WithContext(ctx).Order("name asc")
	if categoryID != "" {
		tx = tx.Where("category_id = ?", categoryID)
	}
	if err := tx.Find(&items).Error; err != nil {
		return []model.Subcategory{}, err
	}
	return items, nil
}

func (r *categoryGormRepository) FindSubcategoryByID(ctx context.Context, id string) (model.Subcategory, error) {
	var s model.Subcategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return model.Subcategory{}, notFound(err)
	}
	return s, nil
}

// slug一覧をIDに変換（存在しないslugは無視）
func (r *categoryGormRepository) SubcategoryIDsBySlugs(ctx context.Context, slugs []string) ([]string, error) {
	ids := []string{}
	if len(slugs) == 0 {
		return ids, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.Subcategory{}).
		Where("slug IN ?", slugs).
		Order("name asc").
		Pluck("id", &ids).Error
	if err != nil {
		return []string{}, err
	}
	return ids, nil
}

func (r *categoryGormRepository) UpsertCategory(ctx context.Context, c *model.Category) error {
	return r.upsertBySlug(ctx, c, c.Slug, &c.Base, "name", "description")
}

func (r *categoryGormRepository) UpsertSubcategory(ctx context.Context, s *model.Subcategory) error {
	return r.upsertBySlug(ctx, s, s.Slug, &s.Base, "name", "description", "category_id")
}

// slugが既にあればIDを引き継いで更新、無ければ作成
func (r *categoryGormRepository) upsertBySlug(ctx context.Context, value any, slug string, base *model.Base, columns ...string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Base
		err := tx.Model(value).Select("id", "created_at", "updated_at").Where("slug = ?", slug).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(value).Error
		}
		if err != nil {
			return err
		}

		base.ID = existing.ID
		base.CreatedAt = existing.CreatedAt
		return tx.Model(value).
			Where("id = ?", existing.ID).
			Select(append(columns, "updated_at")).
			Updates(value).Error
	})
}
