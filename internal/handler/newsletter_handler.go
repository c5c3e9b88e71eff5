package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NewsletterHandler struct {
	uc *usecase.NewsletterUsecase
}

// DI
func NewNewsletterHandler(uc *usecase.NewsletterUsecase) *NewsletterHandler {
	return &NewsletterHandler{uc: uc}
}

type subscribeRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

func (h *NewsletterHandler) RegisterRoutes(g *echo.Group, mw Middlewares) {
	g.POST("/newsletter", h.subscribe, mw.Optional...)
}

func (h *NewsletterHandler) subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.uc.Subscribe(c.Request().Context(), req.Email, req.Subject, optionalUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "subscribed"})
}
