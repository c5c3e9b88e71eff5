package usecase_test

import (
	"context"
	"io"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q filter.Query) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Count(ctx context.Context, f *filter.Expr) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) UpdateRating(ctx context.Context, id string, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id string) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) ListSubcategories(ctx context.Context, categoryID string) ([]model.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	items, _ := args.Get(0).([]model.Subcategory)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindSubcategoryByID(ctx context.Context, id string) (model.Subcategory, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Subcategory)
	return s, args.Error(1)
}

func (m *CategoryRepoMock) SubcategoryIDsBySlugs(ctx context.Context, slugs []string) ([]string, error) {
	args := m.Called(ctx, slugs)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *CategoryRepoMock) UpsertCategory(ctx context.Context, c *model.Category) error {
	panic("not used in usecase tests")
}

func (m *CategoryRepoMock) UpsertSubcategory(ctx context.Context, s *model.Subcategory) error {
	panic("not used in usecase tests")
}

type StoreRepoMock struct{ mock.Mock }

func (m *StoreRepoMock) Create(ctx context.Context, s *model.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *StoreRepoMock) FindByID(ctx context.Context, id string) (model.Store, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) FindBySlug(ctx context.Context, slug string) (model.Store, error) {
	args := m.Called(ctx, slug)
	s, _ := args.Get(0).(model.Store)
	return s, args.Error(1)
}

func (m *StoreRepoMock) Update(ctx context.Context, s model.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *StoreRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *StoreRepoMock) List(ctx context.Context, q filter.Query) ([]model.Store, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Store)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *StoreRepoMock) Count(ctx context.Context, f *filter.Expr) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, l *model.AuditLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, q filter.Query) ([]model.AuditLog, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Get(1).(int64), args.Error(2)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Create(ctx context.Context, cart *model.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *CartRepoMock) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) ListIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *CartRepoMock) DeleteStaleGuestCarts(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID string) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) AddQuantity(ctx context.Context, cartID string, productID string, addQty int) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID, addQty)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID string, qty int) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID string) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartIDs(ctx context.Context, cartIDs []string) error {
	args := m.Called(ctx, cartIDs)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, q filter.Query) ([]model.Order, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListAll(ctx context.Context, f *filter.Expr, sort filter.Sorts, limit int) ([]model.Order, error) {
	args := m.Called(ctx, f, sort, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) Count(ctx context.Context, f *filter.Expr) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type SalesRepoMock struct{ mock.Mock }

func (m *SalesRepoMock) DailySales(ctx context.Context, storeID string) ([]model.DailySales, error) {
	args := m.Called(ctx, storeID)
	items, _ := args.Get(0).([]model.DailySales)
	return items, args.Error(1)
}

func (m *SalesRepoMock) CountCustomers(ctx context.Context, storeID string) (int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, a *model.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, id string) (model.Address, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

type NotificationRepoMock struct{ mock.Mock }

func (m *NotificationRepoMock) FindByEmail(ctx context.Context, email string) (model.Notification, error) {
	args := m.Called(ctx, email)
	n, _ := args.Get(0).(model.Notification)
	return n, args.Error(1)
}

func (m *NotificationRepoMock) Upsert(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

var (
	_ repo.ProductRepository      = (*ProductRepoMock)(nil)
	_ repo.CategoryRepository     = (*CategoryRepoMock)(nil)
	_ repo.StoreRepository        = (*StoreRepoMock)(nil)
	_ repo.AuditLogRepository     = (*AuditLogRepoMock)(nil)
	_ repo.CartRepository         = (*CartRepoMock)(nil)
	_ repo.CartItemRepository     = (*CartItemRepoMock)(nil)
	_ repo.OrderRepository        = (*OrderRepoMock)(nil)
	_ repo.SalesRepository        = (*SalesRepoMock)(nil)
	_ repo.AddressRepository      = (*AddressRepoMock)(nil)
	_ repo.NotificationRepository = (*NotificationRepoMock)(nil)
)

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTx の中で渡す repos を固定する
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	addresses repo.AddressRepository
	orders    repo.OrderRepository
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
	auditLogs repo.AuditLogRepository
}

func (r *TxReposMock) Addresses() repo.AddressRepository  { return r.addresses }
func (r *TxReposMock) Orders() repo.OrderRepository       { return r.orders }
func (r *TxReposMock) Carts() repo.CartRepository         { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository { return r.cartItems }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

// =====================
// ports
// =====================

type MailerMock struct{ mock.Mock }

func (m *MailerMock) Send(ctx context.Context, mail usecase.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

type FileStoreMock struct{ mock.Mock }

func (m *FileStoreMock) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func strPtr(s string) *string { return &s }
