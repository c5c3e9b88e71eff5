package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	//商品込み、作成順
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID string) (model.CartItem, error)
	// 同一商品はプラス
	AddQuantity(ctx context.Context, cartID string, productID string, addQty int) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID string, qty int) error
	DeleteByID(ctx context.Context, cartItemID string) error
	DeleteByCartIDs(ctx context.Context, cartIDs []string) error
}
