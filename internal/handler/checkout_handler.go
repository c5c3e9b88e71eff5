package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// POST /checkout。明細はクライアントから受けずcookieのカートから読む
type CheckoutHandler struct {
	checkout *usecase.CheckoutUsecase
	carts    *usecase.CartUsecase
}

// DI
func NewCheckoutHandler(checkout *usecase.CheckoutUsecase, carts *usecase.CartUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, carts: carts}
}

func (h *CheckoutHandler) RegisterRoutes(g *echo.Group, mw Middlewares) {
	g.POST("/checkout", h.checkoutOrder, mw.Optional...)
}

func (h *CheckoutHandler) checkoutOrder(c echo.Context) error {
	var data usecase.CheckoutData
	if err := c.Bind(&data); err != nil {
		return badRequest(c, "invalid body")
	}

	ctx := c.Request().Context()
	cartID := cartIDFromCookie(c)
	items := h.carts.GetCartItems(ctx, cartID)

	res, err := h.checkout.ProcessOrder(ctx, optionalUserID(c), cartID, data, items)
	if err != nil {
		he, ok := usecase.AsHTTPError(err)
		if !ok || len(he.Fields) > 0 {
			return writeError(c, err)
		}
		return c.JSON(he.Status, res)
	}
	return c.JSON(http.StatusCreated, res)
}
