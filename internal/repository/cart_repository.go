package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	FindByID(ctx context.Context, cartID string) (model.Cart, error)
	ListIDsByUserID(ctx context.Context, userID string) ([]string, error)
	//未ログインで古いカートを明細ごと消す
	DeleteStaleGuestCarts(ctx context.Context, before time.Time) (int64, error)
}
