package usecase

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const featuredLimit = 8

var productSortFields = []string{"name", "price", "rating", "inventory", "created", "updated"}

// 公開カタログ（カテゴリ・商品の読み取り）
type CatalogUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
	log        *zap.Logger
}

func NewCatalogUsecase(categories repo.CategoryRepository, products repo.ProductRepository, log *zap.Logger) *CatalogUsecase {
	return &CatalogUsecase{categories: categories, products: products, log: log}
}

// 商品一覧の検索条件（クエリ文字列そのまま）
type ProductListParams struct {
	Page          int
	PerPage       int
	Sort          string
	Category      string
	Subcategories string // slugのカンマ区切り
	PriceRange    string // "min-max"
	StoreIDs      string // カンマ区切り
	Search        string
	IncludeHidden bool
}

// 名前順
func (u *CatalogUsecase) ListCategories(ctx context.Context) []model.Category {
	items, err := u.categories.List(ctx)
	if err != nil {
		u.log.Error("list categories failed", zap.Error(err))
		return []model.Category{}
	}
	return items
}

func (u *CatalogUsecase) GetCategory(ctx context.Context, slug string) (model.Category, error) {
	c, err := u.categories.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, errNotFound()
	}
	if err != nil {
		u.log.Error("get category failed", zap.String("slug", slug), zap.Error(err))
		return model.Category{}, errDB()
	}
	return c, nil
}

func (u *CatalogUsecase) ListSubcategories(ctx context.Context, categoryID string) []model.Subcategory {
	items, err := u.categories.ListSubcategories(ctx, categoryID)
	if err != nil {
		u.log.Error("list subcategories failed", zap.String("category", categoryID), zap.Error(err))
		return []model.Subcategory{}
	}
	return items
}

// 商品一覧。失敗時は空の結果
func (u *CatalogUsecase) ListProducts(ctx context.Context, p ProductListParams) filter.Result[model.Product] {
	page := filter.NewPage(p.Page, p.PerPage)

	f, err := u.productFilter(ctx, p)
	if err != nil {
		u.log.Error("build product filter failed", zap.Error(err))
		return filter.Empty[model.Product]()
	}

	items, total, err := u.products.List(ctx, filter.Query{
		Filter: f,
		Sort:   parseSort(p.Sort, filter.Sorts{filter.Desc("created")}, productSortFields...),
		Page:   page,
	})
	if err != nil {
		u.log.Error("list products failed", zap.String("filter", f.String()), zap.Error(err))
		return filter.Empty[model.Product]()
	}
	return filter.NewResult(items, page, total)
}

func (u *CatalogUsecase) productFilter(ctx context.Context, p ProductListParams) (*filter.Expr, error) {
	var active *filter.Expr
	if !p.IncludeHidden {
		active = filter.Eq("active", true)
	}

	var category *filter.Expr
	if p.Category != "" {
		category = filter.Eq("category", p.Category)
	}

	var subcategory *filter.Expr
	if slugs := splitList(p.Subcategories, ","); len(slugs) > 0 {
		ids, err := u.categories.SubcategoryIDsBySlugs(ctx, slugs)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			// 存在しないslugだけ指定されたら0件
			ids = []string{""}
		}
		subcategory = filter.In("subcategory", ids...)
	}

	return filter.And(
		active,
		category,
		subcategory,
		priceRange(p.PriceRange),
		filter.In("store", splitList(p.StoreIDs, ",")...),
		filter.Like("name", p.Search),
	), nil
}

// "10-50" → price >= 10 && price <= 50。片側だけ・不正な値は無視
func priceRange(s string) *filter.Expr {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return nil
	}
	var lo, hi *filter.Expr
	if d, err := decimal.NewFromString(strings.TrimSpace(from)); err == nil {
		lo = filter.Gte("price", d)
	}
	if d, err := decimal.NewFromString(strings.TrimSpace(to)); err == nil {
		hi = filter.Lte("price", d)
	}
	return filter.And(lo, hi)
}

// 評価4以上の公開商品を評価順で8件
func (u *CatalogUsecase) GetFeaturedProducts(ctx context.Context) []model.Product {
	items, _, err := u.products.List(ctx, filter.Query{
		Filter: filter.And(filter.Eq("active", true), filter.Gte("rating", 4)),
		Sort:   filter.Sorts{filter.Desc("rating"), filter.Desc("created")},
		Page:   filter.First(featuredLimit),
	})
	if err != nil {
		u.log.Error("featured products failed", zap.Error(err))
		return []model.Product{}
	}
	return items
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, errNotFound()
	}
	if err != nil {
		u.log.Error("get product failed", zap.String("product", id), zap.Error(err))
		return model.Product{}, errDB()
	}
	return p, nil
}

// 在庫数。取れなければ0
func (u *CatalogUsecase) GetProductInventory(ctx context.Context, id string) int {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			u.log.Error("get inventory failed", zap.String("product", id), zap.Error(err))
		}
		return 0
	}
	return p.Inventory
}

// カテゴリ内の公開商品数
func (u *CatalogUsecase) GetProductCountByCategory(ctx context.Context, categoryID string) int64 {
	n, err := u.products.Count(ctx, filter.And(filter.Eq("category", categoryID), filter.Eq("active", true)))
	if err != nil {
		u.log.Error("count products failed", zap.String("category", categoryID), zap.Error(err))
		return 0
	}
	return n
}
