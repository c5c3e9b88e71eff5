package middleware

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ストアの持ち主か確認する
type StoreAuthorizer interface {
	Authorize(ctx context.Context, userID string, storeID string) (model.Store, error)
}

// :storeId のストアがログインユーザーの物か確認してcontextに入れる
func StoreOwnerGuard(stores StoreAuthorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserIDKey).(string)
			if !ok || userID == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			store, err := stores.Authorize(c.Request().Context(), userID, c.Param("storeId"))
			if err != nil {
				if he, ok := usecase.AsHTTPError(err); ok {
					return c.JSON(he.Status, errorJSON(he.Message))
				}
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			c.Set(CtxStoreKey, store)
			return next(c)
		}
	}
}
