package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func customerOrder(email, name, amount string, created time.Time) model.Order {
	o := model.Order{Email: email, Name: name, Amount: model.MustMoney(amount), StoreID: "s1"}
	o.CreatedAt = created
	return o
}

func TestGroupCustomers(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	orders := []model.Order{
		customerOrder("bob@example.com", "Bob", "10.00", day(3)),
		customerOrder("amy@example.com", "Amy", "5.50", day(2)),
		customerOrder("BOB@example.com", "Bobby", "2.25", day(1)),
	}

	got := usecase.GroupCustomers(orders)
	require.Len(t, got, 2)

	assert.Equal(t, "bob@example.com", got[0].Email)
	assert.Equal(t, 2, got[0].OrderPlaced)
	assert.Equal(t, "12.25", got[0].TotalSpent.String())
	// 一番古い注文の日時と名前
	assert.Equal(t, day(1), got[0].Created)
	assert.Equal(t, "Bobby", got[0].Name)

	assert.Equal(t, "amy@example.com", got[1].Email)
	assert.Equal(t, 1, got[1].OrderPlaced)
}

func TestSortCustomers(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cs := []model.Customer{
		{Name: "carl", Email: "c@x.io", OrderPlaced: 1, TotalSpent: model.MustMoney("30"), Created: base.Add(2 * time.Hour)},
		{Name: "Amy", Email: "a@x.io", OrderPlaced: 3, TotalSpent: model.MustMoney("5"), Created: base},
		{Name: "bob", Email: "b@x.io", OrderPlaced: 2, TotalSpent: model.MustMoney("12"), Created: base.Add(time.Hour)},
	}
	emails := func() []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.Email)
		}
		return out
	}

	usecase.SortCustomers(cs, "")
	assert.Equal(t, []string{"c@x.io", "b@x.io", "a@x.io"}, emails())

	usecase.SortCustomers(cs, "name.asc")
	assert.Equal(t, []string{"a@x.io", "b@x.io", "c@x.io"}, emails())

	usecase.SortCustomers(cs, "totalSpent.desc")
	assert.Equal(t, []string{"c@x.io", "b@x.io", "a@x.io"}, emails())

	usecase.SortCustomers(cs, "-orderPlaced")
	assert.Equal(t, []string{"a@x.io", "b@x.io", "c@x.io"}, emails())
}

func TestGetStoreCustomers_PaginatesInMemory(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := usecase.NewCustomerUsecase(orders, zap.NewNop())

	all := make([]model.Order, 0, 25)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 25; i++ {
		all = append(all, customerOrder(fmt.Sprintf("c%02d@x.io", i), "C", "1.00", base.Add(time.Duration(i)*time.Hour)))
	}
	orders.On("ListAll", mock.Anything, mock.MatchedBy(func(e *filter.Expr) bool {
		return e.String() == `store = "s1" && email ~ "x.io"`
	}), filter.Sorts{filter.Asc("created")}, 10000).Return(all, nil)

	got := uc.GetStoreCustomers(context.Background(), "s1", usecase.CustomerListParams{
		Page:    2,
		PerPage: 10,
		Sort:    "email.asc",
		Search:  "x.io",
	})
	require.Len(t, got.Data, 10)
	assert.Equal(t, 3, got.PageCount)
	assert.Equal(t, "c11@x.io", got.Data[0].Email)
	assert.Equal(t, "c20@x.io", got.Data[9].Email)
}
