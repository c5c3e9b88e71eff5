package handler

import (
	"net/http"
	"net/url"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// クエリ文字列から一覧条件
func orderListParams(c echo.Context) usecase.OrderListParams {
	return usecase.OrderListParams{
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "per_page", 0),
		Sort:     c.QueryParam("sort"),
		Customer: c.QueryParam("customer"),
		Statuses: c.QueryParam("status"),
		From:     c.QueryParam("from"),
		To:       c.QueryParam("to"),
	}
}

func (h *DashboardHandler) listOrders(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	return c.JSON(http.StatusOK, h.orders.GetStoreOrders(c.Request().Context(), store.ID, orderListParams(c)))
}

func (h *DashboardHandler) getOrder(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	ctx := c.Request().Context()
	o, err := h.orders.GetStoreOrder(ctx, store.ID, c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderDetailResponse{Order: o, Items: h.orders.GetOrderLineItems(ctx, o)})
}

func (h *DashboardHandler) updateOrderStatus(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	userID, _ := getUserIDFromContext(c)

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	o, err := h.orders.UpdateOrderStatus(c.Request().Context(), userID, store.ID, c.Param("orderId"), model.OrderStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *DashboardHandler) listCustomers(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	out := h.customers.GetStoreCustomers(c.Request().Context(), store.ID, usecase.CustomerListParams{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 0),
		Sort:    c.QueryParam("sort"),
		Search:  c.QueryParam("search"),
		From:    c.QueryParam("from"),
		To:      c.QueryParam("to"),
	})
	return c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) customerOrders(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	email, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return badRequest(c, "invalid email")
	}
	return c.JSON(http.StatusOK, h.orders.GetCustomerOrders(c.Request().Context(), store.ID, email, orderListParams(c)))
}

func (h *DashboardHandler) storeAnalytics(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	return c.JSON(http.StatusOK, h.analytics.GetStoreAnalytics(c.Request().Context(), store.ID))
}
