package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type NotificationRepository interface {
	FindByEmail(ctx context.Context, email string) (model.Notification, error)
	//emailで作成または更新。既存のtokenは変えない
	Upsert(ctx context.Context, n *model.Notification) error
}
