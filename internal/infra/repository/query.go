package repository

import (
	"context"
	"errors"

	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

// フィルタをWHEREに適用
func applyFilter(tx *gorm.DB, f *filter.Expr, cols filter.Columns) (*gorm.DB, error) {
	where, args, err := filter.ToSQL(f, cols)
	if err != nil {
		return nil, err
	}
	if where != "" {
		tx = tx.Where(where, args...)
	}
	return tx, nil
}

// 一覧の共通処理: 絞り込み→件数→並び順→ページ
func listQuery[T any](ctx context.Context, db *gorm.DB, q filter.Query, cols filter.Columns, preloads ...string) ([]T, int64, error) {
	items := []T{}
	var total int64

	tx, err := applyFilter(db.WithContext(ctx).Model(new(T)), q.Filter, cols)
	if err != nil {
		return items, 0, err
	}
	base := tx.Session(&gorm.Session{})

	if err := base.Count(&total).Error; err != nil {
		return items, 0, err
	}
	if total == 0 {
		return items, 0, nil
	}

	page, err := orderAndPage(base, q.Sort, q.Page, cols)
	if err != nil {
		return items, 0, err
	}
	for _, p := range preloads {
		page = page.Preload(p)
	}
	if err := page.Find(&items).Error; err != nil {
		return []T{}, 0, err
	}
	return items, total, nil
}

func orderAndPage(tx *gorm.DB, sorts filter.Sorts, p filter.Page, cols filter.Columns) (*gorm.DB, error) {
	order, err := sorts.ToSQL(cols)
	if err != nil {
		return nil, err
	}
	if order != "" {
		tx = tx.Order(order)
	}
	//同値のときの順序を固定
	tx = tx.Order("id asc")
	if p.PerPage > 0 {
		tx = tx.Offset(p.Offset()).Limit(p.PerPage)
	}
	return tx, nil
}

func countQuery[T any](ctx context.Context, db *gorm.DB, f *filter.Expr, cols filter.Columns) (int64, error) {
	tx, err := applyFilter(db.WithContext(ctx).Model(new(T)), f, cols)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// gorm.ErrRecordNotFound を repo.ErrNotFound に揃える
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	return err
}

// 0件更新は「対象がない」
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
