package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) repo.NotificationRepository {
	return &notificationGormRepository{db: db}
}

func (r *notificationGormRepository) FindByEmail(ctx context.Context, email string) (model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&n).Error; err != nil {
		return model.Notification{}, notFound(err)
	}
	return n, nil
}

// emailが既にあれば購読フラグを更新。tokenは初回のものを残し、保存後の行をnに読み直す
func (r *notificationGormRepository) Upsert(ctx context.Context, n *model.Notification) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"newsletter", "updated_at"}),
	}).Create(n).Error
	if err != nil {
		return err
	}
	// nのIDは競合時に使われないので別の変数に読む
	var stored model.Notification
	if err := db.Where("email = ?", n.Email).First(&stored).Error; err != nil {
		return err
	}
	*n = stored
	return nil
}
