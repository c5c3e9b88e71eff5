package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_ListPagination(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	orders := NewOrderGormRepository(gdb)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 25; i++ {
		seedOrder(t, gdb, "store-1", fmt.Sprintf("c%02d@example.com", i), "10.00", model.OrderStatusPending, base.Add(time.Duration(i)*time.Hour))
	}
	seedOrder(t, gdb, "store-2", "other@example.com", "10.00", model.OrderStatusPending, base)

	page := filter.NewPage(2, 10)
	got, total, err := orders.List(ctx, filter.Query{
		Filter: filter.Eq("store", "store-1"),
		Sort:   filter.Sorts{filter.Asc("created")},
		Page:   page,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Equal(t, 3, page.PageCount(total))
	require.Len(t, got, 10)
	assert.Equal(t, "c11@example.com", got[0].Email)
	assert.Equal(t, "c20@example.com", got[9].Email)
}

func TestOrder_ListFilters(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	orders := NewOrderGormRepository(gdb)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seedOrder(t, gdb, "s", "Alice@Example.com", "30.00", model.OrderStatusPending, base)
	seedOrder(t, gdb, "s", "bob@example.com", "20.00", model.OrderStatusShipped, base.Add(24*time.Hour))
	seedOrder(t, gdb, "s", "carol@example.com", "10.00", model.OrderStatusCancelled, base.Add(48*time.Hour))

	got, total, err := orders.List(ctx, filter.Query{
		Filter: filter.And(filter.Eq("store", "s"), filter.Like("email", "alice")),
		Page:   filter.NewPage(1, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Alice@Example.com", got[0].Email)

	got, _, err = orders.List(ctx, filter.Query{
		Filter: filter.And(filter.Eq("store", "s"), filter.In("status", "shipped", "cancelled")),
		Sort:   filter.Sorts{filter.Desc("amount")},
		Page:   filter.NewPage(1, 10),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bob@example.com", got[0].Email)

	got, _, err = orders.List(ctx, filter.Query{
		Filter: filter.And(filter.Eq("store", "s"), filter.Gte("created", base.Add(time.Hour)), filter.Lte("created", base.Add(30*time.Hour))),
		Page:   filter.NewPage(1, 10),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob@example.com", got[0].Email)

	n, err := orders.Count(ctx, filter.And(filter.Eq("store", "s"), filter.Neq("status", "cancelled")))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, _, err = orders.List(ctx, filter.Query{Filter: filter.Eq("password", "x")})
	assert.Error(t, err)
}

func TestOrder_CreateFindUpdateStatus(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	addr := model.Address{Line1: "1 Main", City: "Austin", State: "TX", PostalCode: "78701", Country: "US"}
	require.NoError(t, NewAddressGormRepository(gdb).Create(ctx, &addr))

	orders := NewOrderGormRepository(gdb)
	o := model.Order{
		StoreID:   "s",
		Items:     []model.OrderItem{{ProductID: "p1", ProductName: "Deck", Price: model.MustMoney("49.99"), Quantity: 2}},
		Quantity:  2,
		Amount:    model.MustMoney("99.98"),
		Status:    model.OrderStatusPending,
		Name:      "Bob",
		Email:     "bob@example.com",
		AddressID: addr.ID,
	}
	require.NoError(t, orders.Create(ctx, &o))

	found, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "99.98", found.Amount.String())
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Deck", found.Items[0].ProductName)
	require.NotNil(t, found.Address)
	assert.Equal(t, "Austin", found.Address.City)

	require.NoError(t, orders.UpdateStatus(ctx, o.ID, model.OrderStatusShipped))
	found, err = orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, found.Status)

	assert.ErrorIs(t, orders.UpdateStatus(ctx, "missing", model.OrderStatusShipped), repo.ErrNotFound)
	_, err = orders.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestSales_DailySalesAndCustomers(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	day1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	seedOrder(t, gdb, "s", "a@example.com", "10.50", model.OrderStatusPending, day1)
	seedOrder(t, gdb, "s", "b@example.com", "4.50", model.OrderStatusDelivered, day1.Add(time.Hour))
	seedOrder(t, gdb, "s", "a@example.com", "7.00", model.OrderStatusShipped, day2)
	seedOrder(t, gdb, "s", "c@example.com", "99.00", model.OrderStatusCancelled, day2)
	seedOrder(t, gdb, "other", "z@example.com", "1.00", model.OrderStatusPending, day2)

	sx, err := sqlxFor(gdb)
	require.NoError(t, err)
	sales := NewSalesSQLXRepository(sx)

	got, err := sales.DailySales(ctx, "s")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-06-02", got[0].Date)
	assert.Equal(t, "7.00", got[0].Amount.String())
	assert.Equal(t, "2024-06-01", got[1].Date)
	assert.Equal(t, "15.00", got[1].Amount.String())
	assert.Equal(t, 2, got[1].Orders)

	n, err := sales.CountCustomers(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestOrder_ListAll(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	orders := NewOrderGormRepository(gdb)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, gdb, "s", "a@example.com", "1.00", model.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	got, err := orders.ListAll(ctx, filter.Eq("store", "s"), filter.Sorts{filter.Desc("created")}, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.True(t, got[0].CreatedAt.After(got[1].CreatedAt))
}
