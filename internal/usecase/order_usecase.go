package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

var orderSortFields = []string{"created", "amount", "quantity", "status", "email", "name"}

type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	products repo.ProductRepository
	log      *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, products repo.ProductRepository, log *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, products: products, log: log}
}

// ストアの注文一覧の条件（クエリ文字列そのまま）
type OrderListParams struct {
	Page     int
	PerPage  int
	Sort     string // "created.desc" など
	Customer string // email部分一致
	Statuses string // "pending.shipped"
	From     string // 2006-01-02 または RFC3339
	To       string
}

// 注文明細と現在の商品
type OrderLineItem struct {
	model.OrderItem
	Product *model.Product `json:"expand_product,omitempty"`
}

// 自分の購入履歴（新しい順）
func (u *OrderUsecase) GetOrders(ctx context.Context, userID string, page filter.Page) filter.Result[model.Order] {
	items, total, err := u.orders.List(ctx, filter.Query{
		Filter: filter.Eq("user", userID),
		Sort:   filter.Sorts{filter.Desc("created")},
		Page:   page,
	})
	if err != nil {
		u.log.Error("list purchases failed", zap.String("user", userID), zap.Error(err))
		return filter.Empty[model.Order]()
	}
	return filter.NewResult(items, page, total)
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID string) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, errNotFound()
	}
	if err != nil {
		u.log.Error("get order failed", zap.String("order", orderID), zap.Error(err))
		return model.Order{}, errDB()
	}
	return o, nil
}

// 自分の注文だけ。他人の注文は404
func (u *OrderUsecase) GetPurchase(ctx context.Context, userID string, orderID string) (model.Order, error) {
	o, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}
	if o.UserID == nil || *o.UserID != userID {
		return model.Order{}, errNotFound()
	}
	return o, nil
}

// ストアの注文だけ。他ストアの注文は404
func (u *OrderUsecase) GetStoreOrder(ctx context.Context, storeID string, orderID string) (model.Order, error) {
	o, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}
	if o.StoreID != storeID {
		return model.Order{}, errNotFound()
	}
	return o, nil
}

// 注文明細に商品を付けて返す。失敗時は空
func (u *OrderUsecase) GetOrderLineItems(ctx context.Context, order model.Order) []OrderLineItem {
	out := make([]OrderLineItem, 0, len(order.Items))
	if len(order.Items) == 0 {
		return out
	}

	ids := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		ids = append(ids, it.ProductID)
	}
	products, _, err := u.products.List(ctx, filter.Query{
		Filter: filter.In("id", ids...),
		Page:   filter.First(len(ids)),
	})
	if err != nil {
		u.log.Error("order line items failed", zap.String("order", order.ID), zap.Error(err))
		return out
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, it := range order.Items {
		line := OrderLineItem{OrderItem: it}
		if p, ok := byID[it.ProductID]; ok {
			line.Product = &p
		}
		out = append(out, line)
	}
	return out
}

// ストアの注文一覧
func (u *OrderUsecase) GetStoreOrders(ctx context.Context, storeID string, p OrderListParams) filter.Result[model.Order] {
	return u.listStoreOrders(ctx, storeID, filter.Like("email", p.Customer), p)
}

// 顧客（email一致）の注文一覧
func (u *OrderUsecase) GetCustomerOrders(ctx context.Context, storeID string, email string, p OrderListParams) filter.Result[model.Order] {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return filter.Empty[model.Order]()
	}
	return u.listStoreOrders(ctx, storeID, filter.Eq("email", email), p)
}

func (u *OrderUsecase) listStoreOrders(ctx context.Context, storeID string, customer *filter.Expr, p OrderListParams) filter.Result[model.Order] {
	page := filter.NewPage(p.Page, p.PerPage)

	statuses := []string{}
	for _, s := range splitList(p.Statuses, ".") {
		if st := model.OrderStatus(strings.ToLower(s)); st.Valid() {
			statuses = append(statuses, string(st))
		}
	}

	f := filter.And(
		filter.Eq("store", storeID),
		customer,
		filter.In("status", statuses...),
		dateRange("created", p.From, p.To),
	)
	items, total, err := u.orders.List(ctx, filter.Query{
		Filter: f,
		Sort:   parseSort(p.Sort, filter.Sorts{filter.Desc("created")}, orderSortFields...),
		Page:   page,
	})
	if err != nil {
		u.log.Error("list store orders failed", zap.String("filter", f.String()), zap.Error(err))
		return filter.Empty[model.Order]()
	}
	return filter.NewResult(items, page, total)
}

// 注文ステータス更新。監査ログも同じトランザクションで残す
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, actorID string, storeID string, orderID string, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, NewValidationError(map[string]string{"status": "Invalid status"})
	}

	var updated model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) || (err == nil && o.StoreID != storeID) {
			return errNotFound()
		}
		if err != nil {
			return err
		}
		if o.Status == status {
			updated = o
			return nil
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}

		before, _ := json.Marshal(map[string]string{"status": string(o.Status)})
		after, _ := json.Marshal(map[string]string{"status": string(status)})
		if err := r.AuditLogs().Create(ctx, &model.AuditLog{
			ActorUserID:  actorID,
			StoreID:      storeID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(before),
			AfterJSON:    string(after),
		}); err != nil {
			return err
		}

		o.Status = status
		updated = o
		return nil
	})
	if err != nil {
		if he, ok := AsHTTPError(err); ok {
			return model.Order{}, he
		}
		u.log.Error("update order status failed", zap.String("order", orderID), zap.Error(err))
		return model.Order{}, errDB()
	}
	return updated, nil
}

// "2024-03-01" は日付の範囲として扱う（toはその日の終わりまで）
func dateRange(field, from, to string) *filter.Expr {
	var lo, hi *filter.Expr
	if t, _, ok := parseDate(from); ok {
		lo = filter.Gte(field, t)
	}
	if t, dateOnly, ok := parseDate(to); ok {
		if dateOnly {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		hi = filter.Lte(field, t)
	}
	return filter.And(lo, hi)
}

func parseDate(s string) (time.Time, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, true
	}
	return time.Time{}, false, false
}

// 不正なステータス文字列は422
func ParseOrderStatus(s string) (model.OrderStatus, error) {
	st := model.OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", NewHTTPError(http.StatusUnprocessableEntity, "invalid status")
	}
	return st, nil
}
