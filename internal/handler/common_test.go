package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/filter"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec), rec
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		want     ErrorResponse
	}{
		{
			"validation",
			usecase.NewValidationError(map[string]string{"email": "Invalid email address"}),
			http.StatusUnprocessableEntity,
			ErrorResponse{Error: "validation error", Fields: map[string]string{"email": "Invalid email address"}},
		},
		{"not found", usecase.NewHTTPError(http.StatusNotFound, "not found"), http.StatusNotFound, ErrorResponse{Error: "not found"}},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrorResponse{Error: "internal error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext("/")
			assert.NoError(t, writeError(c, tt.err))
			assert.Equal(t, tt.wantCode, rec.Code)

			var got ErrorResponse
			_ = json.NewDecoder(rec.Body).Decode(&got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryPage(t *testing.T) {
	c, _ := newContext("/?page=3&per_page=500")
	assert.Equal(t, filter.Page{Page: 3, PerPage: filter.MaxPerPage}, queryPage(c))

	c, _ = newContext("/?page=abc")
	assert.Equal(t, filter.Page{Page: 1, PerPage: filter.DefaultPerPage}, queryPage(c))
}

func TestOptionalUserID(t *testing.T) {
	c, _ := newContext("/")
	assert.Nil(t, optionalUserID(c))

	c.Set(middleware.CtxUserIDKey, "u-1")
	if id := optionalUserID(c); assert.NotNil(t, id) {
		assert.Equal(t, "u-1", *id)
	}
}

func TestCartIDFromCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CartCookieName, Value: "cart-1"})
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "cart-1", cartIDFromCookie(c))
}
