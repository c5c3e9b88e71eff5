package repository

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// 集計はsqlxで直接SQLを書く
type salesSQLXRepository struct {
	db *sqlx.DB
}

func NewSalesSQLXRepository(db *sqlx.DB) repo.SalesRepository {
	return &salesSQLXRepository{db: db}
}

type saleRow struct {
	CreatedAt time.Time       `db:"created_at"`
	Amount    decimal.Decimal `db:"amount"`
}

// 日付の切り出しはDBごとに違うので、行を取ってGo側で日ごとにまとめる
func (r *salesSQLXRepository) DailySales(ctx context.Context, storeID string) ([]model.DailySales, error) {
	query := r.db.Rebind(`
		SELECT created_at, amount
		FROM orders
		WHERE store_id = ? AND status <> ?
		ORDER BY created_at DESC
	`)

	var rows []saleRow
	if err := r.db.SelectContext(ctx, &rows, query, storeID, string(model.OrderStatusCancelled)); err != nil {
		return nil, fmt.Errorf("daily sales (store: %s) failed: %w", storeID, err)
	}

	out := []model.DailySales{}
	index := map[string]int{}
	for _, row := range rows {
		day := row.CreatedAt.UTC().Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			index[day] = len(out)
			out = append(out, model.DailySales{Date: day, Amount: model.NewMoney(decimal.Zero)})
			i = len(out) - 1
		}
		out[i].Amount = model.NewMoney(out[i].Amount.Add(row.Amount))
		out[i].Orders++
	}
	return out, nil
}

// emailの種類数
func (r *salesSQLXRepository) CountCustomers(ctx context.Context, storeID string) (int64, error) {
	var n int64
	query := r.db.Rebind(`SELECT COUNT(DISTINCT email) FROM orders WHERE store_id = ?`)
	if err := r.db.GetContext(ctx, &n, query, storeID); err != nil {
		return 0, fmt.Errorf("count customers (store: %s) failed: %w", storeID, err)
	}
	return n, nil
}
