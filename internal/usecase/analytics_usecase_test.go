package usecase_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestGetStoreAnalytics(t *testing.T) {
	orders := new(OrderRepoMock)
	sales := new(SalesRepoMock)
	uc := usecase.NewAnalyticsUsecase(orders, sales, zap.NewNop())

	orders.On("Count", mock.Anything, mock.MatchedBy(func(e *filter.Expr) bool {
		return e.String() == `store = "s1"`
	})).Return(int64(7), nil)
	orders.On("Count", mock.Anything, mock.MatchedBy(func(e *filter.Expr) bool {
		return e.String() == `store = "s1" && status != "cancelled"`
	})).Return(int64(5), nil)
	sales.On("DailySales", mock.Anything, "s1").Return([]model.DailySales{
		{Date: "2024-03-02", Amount: model.MustMoney("20.10"), Orders: 2},
		{Date: "2024-03-01", Amount: model.MustMoney("9.95"), Orders: 3},
	}, nil)
	sales.On("CountCustomers", mock.Anything, "s1").Return(int64(0), errors.New("db down"))

	got := uc.GetStoreAnalytics(context.Background(), "s1")
	assert.Equal(t, int64(7), got.OrderCount)
	assert.Equal(t, int64(5), got.SaleCount)
	assert.Equal(t, "30.05", got.Revenue.String())
	assert.Equal(t, int64(0), got.Customers)
	assert.Len(t, got.Sales, 2)
}
