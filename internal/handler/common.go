package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// ルート登録に使うミドルウェア一式
type Middlewares struct {
	Auth     []echo.MiddlewareFunc // ログイン必須
	Optional []echo.MiddlewareFunc // ゲスト可
	Owner    []echo.MiddlewareFunc // ログイン + ストアの持ち主
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Fields: he.Fields})
	}

	//500
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// AuthJWTが入れたuser_id
func getUserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(string)
	return id, ok && id != ""
}

// 未ログインならnil
func optionalUserID(c echo.Context) *string {
	if id, ok := getUserIDFromContext(c); ok {
		return &id
	}
	return nil
}

// StoreOwnerGuardが入れたストア
func storeFromContext(c echo.Context) (model.Store, bool) {
	s, ok := c.Get(middleware.CtxStoreKey).(model.Store)
	return s, ok
}

// 数値でなければdef
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// page / per_page
func queryPage(c echo.Context) filter.Page {
	return filter.NewPage(queryInt(c, "page", 1), queryInt(c, "per_page", filter.DefaultPerPage))
}
