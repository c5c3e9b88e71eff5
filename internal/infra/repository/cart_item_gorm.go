package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

var _ repo.CartItemRepository = (*CartItemGormRepository)(nil)

// カート明細を一覧取得（商品込み）
func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	items := []model.CartItem{}

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at asc").
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

// 明細を取得
func (r *CartItemGormRepository) FindByID(ctx context.Context, cartItemID string) (model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).Where("id = ?", cartItemID).First(&item).Error; err != nil {
		return model.CartItem{}, notFound(err)
	}
	return item, nil
}

// 同一商品は数量加算、無ければ作成。同時の初回追加も (cart_id, product_id) の一意制約で1行にまとめる
func (r *CartItemGormRepository) AddQuantity(ctx context.Context, cartID string, productID string, addQty int) (model.CartItem, error) {
	if addQty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}

	var out model.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newItem := model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  addQty,
		}
		err := tx.Omit("Product").
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
					"updated_at": time.Now(),
				}),
			}).
			Create(&newItem).Error
		if err != nil {
			return err
		}

		// 競合時はnewItemのIDが使われないので読み直す
		return tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&out).Error
	})
	if err != nil {
		return model.CartItem{}, err
	}

	//カートの更新時刻も進める
	r.touch(ctx, cartID)
	return out, nil
}

// 明細の数量を更新
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, cartItemID string, qty int) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", qty)
	return affected(res)
}

// 明細を削除
func (r *CartItemGormRepository) DeleteByID(ctx context.Context, cartItemID string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", cartItemID).Delete(&model.CartItem{}))
}

// 指定カートの明細を全削除
func (r *CartItemGormRepository) DeleteByCartIDs(ctx context.Context, cartIDs []string) error {
	if len(cartIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("cart_id IN ?", cartIDs).Delete(&model.CartItem{}).Error
}

func (r *CartItemGormRepository) touch(ctx context.Context, cartID string) {
	r.db.WithContext(ctx).Model(&model.Cart{}).Where("id = ?", cartID).UpdateColumn("updated_at", time.Now())
}
