package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カタログ（カテゴリ・商品）の公開API
type ProductHandler struct {
	catalog  *usecase.CatalogUsecase
	products *usecase.ProductUsecase
}

// DI
func NewProductHandler(catalog *usecase.CatalogUsecase, products *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{catalog: catalog, products: products}
}

type ratingRequest struct {
	Rating float64 `json:"rating"`
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(g *echo.Group, mw Middlewares) {
	g.GET("/categories", h.listCategories)
	g.GET("/categories/:slug", h.getCategory)
	g.GET("/categories/:id/product-count", h.productCount)
	g.GET("/subcategories", h.listSubcategories)

	g.GET("/products", h.list)
	g.GET("/products/featured", h.featured)
	g.GET("/products/:id", h.detail)
	g.GET("/products/:id/inventory", h.inventory)
	g.POST("/products/:id/rating", h.rate, mw.Auth...)
}

func (h *ProductHandler) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.ListCategories(c.Request().Context()))
}

func (h *ProductHandler) getCategory(c echo.Context) error {
	cat, err := h.catalog.GetCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *ProductHandler) productCount(c echo.Context) error {
	n := h.catalog.GetProductCountByCategory(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}

// ?category=<id> で絞り込み
func (h *ProductHandler) listSubcategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.ListSubcategories(c.Request().Context(), c.QueryParam("category")))
}

func (h *ProductHandler) list(c echo.Context) error {
	out := h.catalog.ListProducts(c.Request().Context(), usecase.ProductListParams{
		Page:          queryInt(c, "page", 1),
		PerPage:       queryInt(c, "per_page", 0),
		Sort:          c.QueryParam("sort"),
		Category:      c.QueryParam("category"),
		Subcategories: c.QueryParam("subcategories"),
		PriceRange:    c.QueryParam("price_range"),
		StoreIDs:      c.QueryParam("store_ids"),
		Search:        c.QueryParam("search"),
		IncludeHidden: c.QueryParam("active") == "false",
	})
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) featured(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.GetFeaturedProducts(c.Request().Context()))
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) inventory(c echo.Context) error {
	n := h.catalog.GetProductInventory(c.Request().Context(), c.Param("id"))
	return c.JSON(http.StatusOK, map[string]int{"inventory": n})
}

func (h *ProductHandler) rate(c echo.Context) error {
	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.products.UpdateProductRating(c.Request().Context(), c.Param("id"), req.Rating); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
