package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCatalog() (*CategoryRepoMock, *ProductRepoMock, *usecase.CatalogUsecase) {
	categories := new(CategoryRepoMock)
	products := new(ProductRepoMock)
	return categories, products, usecase.NewCatalogUsecase(categories, products, zap.NewNop())
}

func TestListProducts_Filter(t *testing.T) {
	categories, products, uc := newCatalog()
	categories.On("SubcategoryIDsBySlugs", mock.Anything, []string{"decks", "wheels"}).Return([]string{"sub1", "sub2"}, nil)

	want := `active = true && category = "c1" && (subcategory = "sub1" || subcategory = "sub2") && ` +
		`(price >= 10 && price <= 50) && (store = "s1" || store = "s2") && name ~ "deck"`
	products.On("List", mock.Anything, mock.MatchedBy(func(q filter.Query) bool {
		return q.Filter.String() == want && q.Sort.String() == "-price" && q.Page == filter.Page{Page: 1, PerPage: 12}
	})).Return([]model.Product{*productAt("p1", "20.00")}, int64(13), nil)

	got := uc.ListProducts(context.Background(), usecase.ProductListParams{
		PerPage:       12,
		Sort:          "price.desc",
		Category:      "c1",
		Subcategories: "decks, wheels",
		PriceRange:    "10-50",
		StoreIDs:      "s1,s2",
		Search:        "deck",
	})
	assert.Len(t, got.Data, 1)
	assert.Equal(t, 2, got.PageCount)
	products.AssertExpectations(t)
}

func TestListProducts_UnknownSubcategoryMatchesNothing(t *testing.T) {
	categories, products, uc := newCatalog()
	categories.On("SubcategoryIDsBySlugs", mock.Anything, []string{"nope"}).Return([]string{}, nil)
	products.On("List", mock.Anything, mock.MatchedBy(func(q filter.Query) bool {
		return q.Filter.String() == `active = true && subcategory = ""` && q.Sort.String() == "-created"
	})).Return([]model.Product{}, int64(0), nil)

	got := uc.ListProducts(context.Background(), usecase.ProductListParams{Subcategories: "nope"})
	assert.Empty(t, got.Data)
	assert.Equal(t, 0, got.PageCount)
}

func TestListProducts_FailureIsEmpty(t *testing.T) {
	_, products, uc := newCatalog()
	products.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db down"))

	assert.Equal(t, filter.Empty[model.Product](), uc.ListProducts(context.Background(), usecase.ProductListParams{}))
}

func TestGetFeaturedProducts(t *testing.T) {
	_, products, uc := newCatalog()
	products.On("List", mock.Anything, mock.MatchedBy(func(q filter.Query) bool {
		return q.Filter.String() == "active = true && rating >= 4" &&
			q.Sort.String() == "-rating,-created" &&
			q.Page == filter.First(8)
	})).Return([]model.Product{*productAt("p1", "1.00")}, int64(1), nil)

	assert.Len(t, uc.GetFeaturedProducts(context.Background()), 1)
}

func TestGetProduct_NotFound(t *testing.T) {
	_, products, uc := newCatalog()
	products.On("FindByID", mock.Anything, "missing").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), "missing")
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	assert.Equal(t, 0, uc.GetProductInventory(context.Background(), "missing"))
}

func TestGetCategory(t *testing.T) {
	categories, _, uc := newCatalog()
	categories.On("FindBySlug", mock.Anything, "shoes").Return(model.Category{Name: "Shoes", Slug: "shoes"}, nil)
	categories.On("FindBySlug", mock.Anything, "nope").Return(model.Category{}, repo.ErrNotFound)

	c, err := uc.GetCategory(context.Background(), "shoes")
	require.NoError(t, err)
	assert.Equal(t, "Shoes", c.Name)

	_, err = uc.GetCategory(context.Background(), "nope")
	assert.Error(t, err)
}
