package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 自分の購入履歴
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// 注文と明細
type OrderDetailResponse struct {
	Order model.Order             `json:"order"`
	Items []usecase.OrderLineItem `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, mw Middlewares) {
	p := g.Group("/purchases", mw.Auth...)
	p.GET("", h.list)
	p.GET("/:id", h.detail)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(http.StatusOK, h.uc.GetOrders(c.Request().Context(), userID, queryPage(c)))
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	ctx := c.Request().Context()
	o, err := h.uc.GetPurchase(ctx, userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderDetailResponse{Order: o, Items: h.uc.GetOrderLineItems(ctx, o)})
}
