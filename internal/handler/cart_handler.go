package handler

import (
	"net/http"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カートIDを入れるcookie
const CartCookieName = "cartId"

// /cartのHTTP。ゲストはcookieのカートを使う
type CartHandler struct {
	uc           *usecase.CartUsecase
	cookieMaxAge time.Duration
	cookieSecure bool
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, cookieMaxAge time.Duration, cookieSecure bool) *CartHandler {
	return &CartHandler{uc: uc, cookieMaxAge: cookieMaxAge, cookieSecure: cookieSecure}
}

type AddCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// /cart, /cart/items/{id} を登録
func (h *CartHandler) RegisterRoutes(g *echo.Group, mw Middlewares) {
	cg := g.Group("/cart", mw.Optional...)

	cg.GET("", h.getCart)
	cg.GET("/summary", h.summary)
	cg.POST("/items", h.addToCart)
	cg.PATCH("/items/:id", h.patchItem)
	cg.DELETE("/items/:id", h.deleteItem)
	cg.DELETE("", h.clear)
}

// cookieのカートID（無ければ空）
func cartIDFromCookie(c echo.Context) string {
	ck, err := c.Cookie(CartCookieName)
	if err != nil {
		return ""
	}
	return ck.Value
}

// カートが無ければ作ってcookieを返す
func (h *CartHandler) resolveCart(c echo.Context) (model.Cart, error) {
	cart, created, err := h.uc.GetOrCreateCart(c.Request().Context(), cartIDFromCookie(c), optionalUserID(c))
	if err != nil {
		return model.Cart{}, err
	}
	if created {
		h.setCartCookie(c, cart.ID)
	}
	return cart, nil
}

func (h *CartHandler) setCartCookie(c echo.Context, cartID string) {
	c.SetCookie(&http.Cookie{
		Name:     CartCookieName,
		Value:    cartID,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// cookieが無ければ空のカートを返す（作らない）
func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.GetCart(c.Request().Context(), cartIDFromCookie(c)))
}

func (h *CartHandler) summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.GetCartSummary(c.Request().Context(), cartIDFromCookie(c)))
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	cart, err := h.resolveCart(c)
	if err != nil {
		return writeError(c, err)
	}

	item, err := h.uc.AddToCart(c.Request().Context(), cart.ID, req.ProductID, qty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	cartID := cartIDFromCookie(c)
	if err := h.uc.UpdateCartItem(c.Request().Context(), cartID, c.Param("id"), req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.uc.GetCart(c.Request().Context(), cartID))
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	cartID := cartIDFromCookie(c)
	if err := h.uc.DeleteCartItem(c.Request().Context(), cartID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.uc.GetCart(c.Request().Context(), cartID))
}

func (h *CartHandler) clear(c echo.Context) error {
	if err := h.uc.ClearCart(c.Request().Context(), cartIDFromCookie(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
