package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ストアの公開APIと自分のストア
type StoreHandler struct {
	uc *usecase.StoreUsecase
}

// DI
func NewStoreHandler(uc *usecase.StoreUsecase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

func (h *StoreHandler) RegisterRoutes(g *echo.Group, mw Middlewares) {
	g.GET("/stores/featured", h.featured)
	g.GET("/stores/:id", h.detail)
	g.POST("/stores", h.create, mw.Auth...)

	g.GET("/me/stores", h.myStores, mw.Auth...)
	g.GET("/me/plan", h.myPlan, mw.Auth...)
}

func (h *StoreHandler) featured(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.GetFeaturedStores(c.Request().Context()))
}

func (h *StoreHandler) detail(c echo.Context) error {
	s, err := h.uc.GetStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StoreHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var in usecase.StoreInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}

	s, err := h.uc.CreateStore(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *StoreHandler) myStores(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.uc.ListStoresByUser(c.Request().Context(), userID))
}

func (h *StoreHandler) myPlan(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.uc.GetUserPlanMetrics(c.Request().Context(), userID))
}
