package server

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/labstack/echo/v4"
)

// /api 配下にルートを持つもの
type Router interface {
	RegisterRoutes(g *echo.Group, mw handler.Middlewares)
}

type Deps struct {
	Users   repository.UserRepository
	Stores  middleware.StoreAuthorizer
	Routers []Router
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, deps Deps) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.UploadDir != "" {
		e.Static("/uploads", cfg.UploadDir)
	}

	mw := handler.Middlewares{
		Auth: []echo.MiddlewareFunc{
			middleware.AuthJWT(cfg),
			middleware.TokenVersionGuard(deps.Users, true),
		},
		Optional: []echo.MiddlewareFunc{
			middleware.OptionalAuth(cfg),
			middleware.TokenVersionGuard(deps.Users, false),
		},
	}
	mw.Owner = append(append([]echo.MiddlewareFunc{}, mw.Auth...), middleware.StoreOwnerGuard(deps.Stores))

	api := e.Group("/api")
	for _, r := range deps.Routers {
		r.RegisterRoutes(api, mw)
	}
}
