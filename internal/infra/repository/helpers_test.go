package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// テストごとに別のメモリDB
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func seedStore(t *testing.T, gdb *gorm.DB, userID string) model.Store {
	t.Helper()
	s := model.Store{
		Name:         "Store " + userID,
		Slug:         "store-" + userID,
		UserID:       userID,
		Plan:         model.StorePlanFree,
		ProductLimit: model.DefaultProductLimit,
		Active:       true,
	}
	require.NoError(t, NewStoreGormRepository(gdb).Create(context.Background(), &s))
	return s
}

func seedProduct(t *testing.T, gdb *gorm.DB, storeID, name, price string) model.Product {
	t.Helper()
	p := model.Product{
		Name:       name,
		Price:      model.MustMoney(price),
		Inventory:  5,
		StoreID:    storeID,
		CategoryID: "cat-1",
		Active:     true,
	}
	require.NoError(t, NewProductGormRepository(gdb).Create(context.Background(), &p))
	return p
}

func seedOrder(t *testing.T, gdb *gorm.DB, storeID, email string, amount string, status model.OrderStatus, created time.Time) model.Order {
	t.Helper()
	o := model.Order{
		Base:      model.Base{CreatedAt: created},
		StoreID:   storeID,
		Items:     []model.OrderItem{{ProductID: "p", ProductName: "Deck", Price: model.MustMoney(amount), Quantity: 1}},
		Quantity:  1,
		Amount:    model.MustMoney(amount),
		Status:    status,
		Name:      "Customer " + email,
		Email:     email,
		AddressID: "addr",
	}
	require.NoError(t, NewOrderGormRepository(gdb).Create(context.Background(), &o))
	return o
}

func sqlxFor(gdb *gorm.DB) (*sqlx.DB, error) {
	return db.SQLX(gdb)
}
