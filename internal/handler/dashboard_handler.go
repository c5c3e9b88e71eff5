package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /dashboard/stores/:storeId 配下。StoreOwnerGuardを通った後なのでストアはcontextにある
type DashboardHandler struct {
	stores    *usecase.StoreUsecase
	products  *usecase.ProductUsecase
	orders    *usecase.OrderUsecase
	customers *usecase.CustomerUsecase
	analytics *usecase.AnalyticsUsecase
	uploads   *usecase.UploadUsecase
}

// ダッシュボードで使うusecase一式
type DashboardDeps struct {
	Stores    *usecase.StoreUsecase
	Products  *usecase.ProductUsecase
	Orders    *usecase.OrderUsecase
	Customers *usecase.CustomerUsecase
	Analytics *usecase.AnalyticsUsecase
	Uploads   *usecase.UploadUsecase
}

// DI
func NewDashboardHandler(d DashboardDeps) *DashboardHandler {
	return &DashboardHandler{
		stores:    d.Stores,
		products:  d.Products,
		orders:    d.Orders,
		customers: d.Customers,
		analytics: d.Analytics,
		uploads:   d.Uploads,
	}
}

func (h *DashboardHandler) RegisterRoutes(g *echo.Group, mw Middlewares) {
	d := g.Group("/dashboard/stores/:storeId", mw.Owner...)

	d.PATCH("", h.updateStore)
	d.DELETE("", h.deleteStore)
	d.GET("/activity", h.activity)
	d.POST("/uploads", h.upload)

	d.GET("/products", h.listProducts)
	d.POST("/products", h.createProduct)
	d.GET("/products/:productId", h.getProduct)
	d.PATCH("/products/:productId", h.updateProduct)
	d.DELETE("/products/:productId", h.deleteProduct)

	d.GET("/orders", h.listOrders)
	d.GET("/orders/:orderId", h.getOrder)
	d.PATCH("/orders/:orderId/status", h.updateOrderStatus)

	d.GET("/customers", h.listCustomers)
	d.GET("/customers/:email/orders", h.customerOrders)
	d.GET("/analytics", h.storeAnalytics)
}

func (h *DashboardHandler) updateStore(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}

	var in usecase.StoreInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.stores.UpdateStore(c.Request().Context(), store, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) deleteStore(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	userID, _ := getUserIDFromContext(c)

	if err := h.stores.DeleteStore(c.Request().Context(), userID, store); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) activity(c echo.Context) error {
	store, ok := storeFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	}
	return c.JSON(http.StatusOK, h.stores.ListActivity(c.Request().Context(), store.ID, queryPage(c)))
}

// multipartの file を保存してURLを返す
func (h *DashboardHandler) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "invalid file")
	}
	defer f.Close()

	url, err := h.uploads.Upload(c.Request().Context(), fh.Filename, fh.Size, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
