package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCartItem_AddQuantity_IncrementsExisting(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	store := seedStore(t, gdb, "u1")
	p := seedProduct(t, gdb, store.ID, "Deck", "49.99")

	carts := NewCartGormRepository(gdb)
	items := NewCartItemGormRepository(gdb)

	cart := model.Cart{}
	require.NoError(t, carts.Create(ctx, &cart))
	require.NotEmpty(t, cart.ID)

	_, err := items.AddQuantity(ctx, cart.ID, p.ID, 1)
	require.NoError(t, err)
	got, err := items.AddQuantity(ctx, cart.ID, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	list, err := items.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Quantity)
	require.NotNil(t, list[0].Product)
	assert.Equal(t, "49.99", list[0].Product.Price.String())
}

// 初回追加のINSERT直前に別リクエストが同じ商品を入れても、加算にまとまる
func TestCartItem_AddQuantity_ConcurrentFirstAdd(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	store := seedStore(t, gdb, "u1")
	p := seedProduct(t, gdb, store.ID, "Deck", "49.99")

	cart := model.Cart{}
	require.NoError(t, NewCartGormRepository(gdb).Create(ctx, &cart))

	// cart_items へのINSERT直前に、競合する行を同じ接続で先に入れる
	interleaved := false
	require.NoError(t, gdb.Callback().Create().Before("gorm:create").Register("test:interleave", func(tx *gorm.DB) {
		if interleaved || tx.Statement.Table != "cart_items" {
			return
		}
		interleaved = true
		other := model.CartItem{CartID: cart.ID, ProductID: p.ID, Quantity: 2}
		if err := tx.Session(&gorm.Session{NewDB: true}).Omit("Product").Create(&other).Error; err != nil {
			_ = tx.AddError(err)
		}
	}))
	t.Cleanup(func() { _ = gdb.Callback().Create().Remove("test:interleave") })

	got, err := NewCartItemGormRepository(gdb).AddQuantity(ctx, cart.ID, p.ID, 1)
	require.NoError(t, err)
	require.True(t, interleaved)
	assert.Equal(t, 3, got.Quantity)

	var rows []model.CartItem
	require.NoError(t, gdb.Where("cart_id = ?", cart.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Quantity)
	assert.Equal(t, rows[0].ID, got.ID)
}

func TestCartItem_UpdateAndDelete(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	store := seedStore(t, gdb, "u1")
	p := seedProduct(t, gdb, store.ID, "Wheels", "20.00")
	carts := NewCartGormRepository(gdb)
	items := NewCartItemGormRepository(gdb)

	cart := model.Cart{}
	require.NoError(t, carts.Create(ctx, &cart))
	item, err := items.AddQuantity(ctx, cart.ID, p.ID, 3)
	require.NoError(t, err)

	require.NoError(t, items.UpdateQuantity(ctx, item.ID, 7))
	found, err := items.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, found.Quantity)

	require.NoError(t, items.DeleteByID(ctx, item.ID))
	_, err = items.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, items.DeleteByID(ctx, item.ID), repo.ErrNotFound)
}

func TestCartItem_DeleteByCartIDs(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	store := seedStore(t, gdb, "u1")
	p := seedProduct(t, gdb, store.ID, "Deck", "10.00")
	carts := NewCartGormRepository(gdb)
	items := NewCartItemGormRepository(gdb)

	user := "user-1"
	a := model.Cart{UserID: &user}
	b := model.Cart{UserID: &user}
	other := model.Cart{}
	for _, c := range []*model.Cart{&a, &b, &other} {
		require.NoError(t, carts.Create(ctx, c))
		_, err := items.AddQuantity(ctx, c.ID, p.ID, 1)
		require.NoError(t, err)
	}

	ids, err := carts.ListIDsByUserID(ctx, user)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)

	require.NoError(t, items.DeleteByCartIDs(ctx, ids))

	for _, id := range ids {
		list, err := items.ListByCartID(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, list)
	}
	list, err := items.ListByCartID(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCart_DeleteStaleGuestCarts(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()

	carts := NewCartGormRepository(gdb)
	user := "user-1"

	old := model.Cart{}
	fresh := model.Cart{}
	owned := model.Cart{UserID: &user}
	for _, c := range []*model.Cart{&old, &fresh, &owned} {
		require.NoError(t, carts.Create(ctx, c))
	}
	past := time.Now().Add(-60 * 24 * time.Hour)
	require.NoError(t, gdb.Model(&model.Cart{}).Where("id IN ?", []string{old.ID, owned.ID}).UpdateColumn("updated_at", past).Error)

	n, err := carts.DeleteStaleGuestCarts(ctx, time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = carts.FindByID(ctx, old.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	_, err = carts.FindByID(ctx, fresh.ID)
	assert.NoError(t, err)
	_, err = carts.FindByID(ctx, owned.ID)
	assert.NoError(t, err)
}
