package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CategoryRepository interface {
	//名前順
	List(ctx context.Context) ([]model.Category, error)
	//サブカテゴリ込み
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
	FindByID(ctx context.Context, id string) (model.Category, error)

	//categoryIDが空なら全件
	ListSubcategories(ctx context.Context, categoryID string) ([]model.Subcategory, error)
	FindSubcategoryByID(ctx context.Context, id string) (model.Subcategory, error)
	SubcategoryIDsBySlugs(ctx context.Context, slugs []string) ([]string, error)

	//seed用（slugで上書き）
	UpsertCategory(ctx context.Context, c *model.Category) error
	UpsertSubcategory(ctx context.Context, s *model.Subcategory) error
}
