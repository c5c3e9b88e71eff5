package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ?page&per_page&search&sort（非公開含む）
func (h *DashboardHandler) listProducts(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	out := h.products.ListStoreProducts(
		c.Request().Context(),
		store.ID,
		queryPage(c),
		c.QueryParam("search"),
		c.QueryParam("sort"),
	)
	return c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) createProduct(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	var in usecase.ProductInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.products.AddProduct(c.Request().Context(), store, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *DashboardHandler) getProduct(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	p, err := h.products.GetStoreProduct(c.Request().Context(), store, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *DashboardHandler) updateProduct(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	userID, _ := getUserIDFromContext(c)

	var in usecase.ProductInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.products.UpdateProduct(c.Request().Context(), userID, store, c.Param("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *DashboardHandler) deleteProduct(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	userID, _ := getUserIDFromContext(c)

	if err := h.products.DeleteProduct(c.Request().Context(), userID, store, c.Param("productId")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
