package usecase

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ダッシュボードの集計
type AnalyticsUsecase struct {
	orders repo.OrderRepository
	sales  repo.SalesRepository
	log    *zap.Logger
}

func NewAnalyticsUsecase(orders repo.OrderRepository, sales repo.SalesRepository, log *zap.Logger) *AnalyticsUsecase {
	return &AnalyticsUsecase{orders: orders, sales: sales, log: log}
}

type StoreAnalytics struct {
	OrderCount int64              `json:"orderCount"`
	SaleCount  int64              `json:"saleCount"`
	Revenue    model.Money        `json:"revenue"`
	Customers  int64              `json:"customerCount"`
	Sales      []model.DailySales `json:"sales"`
}

// 全注文数
func (u *AnalyticsUsecase) GetOrderCount(ctx context.Context, storeID string) int64 {
	n, err := u.orders.Count(ctx, filter.Eq("store", storeID))
	if err != nil {
		u.log.Error("order count failed", zap.String("store", storeID), zap.Error(err))
		return 0
	}
	return n
}

// キャンセル以外の注文数
func (u *AnalyticsUsecase) GetSaleCount(ctx context.Context, storeID string) int64 {
	n, err := u.orders.Count(ctx, filter.And(
		filter.Eq("store", storeID),
		filter.Neq("status", string(model.OrderStatusCancelled)),
	))
	if err != nil {
		u.log.Error("sale count failed", zap.String("store", storeID), zap.Error(err))
		return 0
	}
	return n
}

// 日別売上（新しい順）
func (u *AnalyticsUsecase) GetSales(ctx context.Context, storeID string) []model.DailySales {
	sales, err := u.sales.DailySales(ctx, storeID)
	if err != nil {
		u.log.Error("daily sales failed", zap.String("store", storeID), zap.Error(err))
		return []model.DailySales{}
	}
	return sales
}

func (u *AnalyticsUsecase) GetCustomerCount(ctx context.Context, storeID string) int64 {
	n, err := u.sales.CountCustomers(ctx, storeID)
	if err != nil {
		u.log.Error("customer count failed", zap.String("store", storeID), zap.Error(err))
		return 0
	}
	return n
}

// 各集計を並行に取る。失敗した項目は0
func (u *AnalyticsUsecase) GetStoreAnalytics(ctx context.Context, storeID string) StoreAnalytics {
	var out StoreAnalytics

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.OrderCount = u.GetOrderCount(gctx, storeID)
		return nil
	})
	g.Go(func() error {
		out.SaleCount = u.GetSaleCount(gctx, storeID)
		return nil
	})
	g.Go(func() error {
		out.Sales = u.GetSales(gctx, storeID)
		return nil
	})
	g.Go(func() error {
		out.Customers = u.GetCustomerCount(gctx, storeID)
		return nil
	})
	_ = g.Wait()

	revenue := decimal.Zero
	for _, d := range out.Sales {
		revenue = revenue.Add(d.Amount.Decimal)
	}
	out.Revenue = model.NewMoney(revenue)
	return out
}
