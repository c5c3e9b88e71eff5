package usecase

import (
	"context"
	"sort"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// 一度に集計する注文の上限
const maxCustomerOrders = 10000

// 注文をemailでまとめた顧客一覧
type CustomerUsecase struct {
	orders repo.OrderRepository
	log    *zap.Logger
}

func NewCustomerUsecase(orders repo.OrderRepository, log *zap.Logger) *CustomerUsecase {
	return &CustomerUsecase{orders: orders, log: log}
}

type CustomerListParams struct {
	Page    int
	PerPage int
	Sort    string // name|email|totalSpent|orderPlaced|created + .asc/.desc
	Search  string // email部分一致
	From    string
	To      string
}

func (u *CustomerUsecase) GetStoreCustomers(ctx context.Context, storeID string, p CustomerListParams) filter.Result[model.Customer] {
	page := filter.NewPage(p.Page, p.PerPage)

	f := filter.And(
		filter.Eq("store", storeID),
		filter.Like("email", p.Search),
		dateRange("created", p.From, p.To),
	)
	orders, err := u.orders.ListAll(ctx, f, filter.Sorts{filter.Asc("created")}, maxCustomerOrders)
	if err != nil {
		u.log.Error("list customer orders failed", zap.String("filter", f.String()), zap.Error(err))
		return filter.Empty[model.Customer]()
	}
	if len(orders) >= maxCustomerOrders {
		u.log.Warn("customer aggregation hit order cap", zap.String("store", storeID), zap.Int("cap", maxCustomerOrders))
	}

	customers := GroupCustomers(orders)
	SortCustomers(customers, p.Sort)
	return filter.Result[model.Customer]{
		Data:      filter.Slice(customers, page),
		PageCount: page.PageCount(int64(len(customers))),
	}
}

// emailごとに件数・合計・最初の注文日をまとめる。名前は最初の注文のもの
func GroupCustomers(orders []model.Order) []model.Customer {
	index := map[string]int{}
	out := []model.Customer{}
	totals := []decimal.Decimal{}

	for _, o := range orders {
		email := strings.ToLower(o.Email)
		i, ok := index[email]
		if !ok {
			i = len(out)
			index[email] = i
			out = append(out, model.Customer{Name: o.Name, Email: email, Created: o.CreatedAt})
			totals = append(totals, decimal.Zero)
		}
		c := &out[i]
		c.OrderPlaced++
		totals[i] = totals[i].Add(o.Amount.Decimal)
		if o.CreatedAt.Before(c.Created) {
			c.Created = o.CreatedAt
			c.Name = o.Name
		}
	}
	for i := range out {
		out[i].TotalSpent = model.NewMoney(totals[i])
	}
	return out
}

// 既定は created の降順。同値はemail順
func SortCustomers(cs []model.Customer, s string) {
	field, desc := "created", true
	if sorts := parseSort(s, nil, "name", "email", "totalSpent", "orderPlaced", "created"); len(sorts) > 0 {
		field, desc = sorts[0].Field, sorts[0].Desc
	}

	less := func(a, b model.Customer) int {
		switch field {
		case "name":
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case "email":
			return strings.Compare(a.Email, b.Email)
		case "totalSpent":
			return a.TotalSpent.Cmp(b.TotalSpent.Decimal)
		case "orderPlaced":
			return a.OrderPlaced - b.OrderPlaced
		default:
			return a.Created.Compare(b.Created)
		}
	}

	sort.SliceStable(cs, func(i, j int) bool {
		c := less(cs[i], cs[j])
		if c == 0 {
			return cs[i].Email < cs[j].Email
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}
