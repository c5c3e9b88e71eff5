package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

var auditLogColumns = filter.Columns{
	"id":            "id",
	"store":         "store_id",
	"actor":         "actor_user_id",
	"action":        "action",
	"resource_type": "resource_type",
	"resource_id":   "resource_id",
	"created":       "created_at",
}

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogGormRepository) List(ctx context.Context, q filter.Query) ([]model.AuditLog, int64, error) {
	return listQuery[model.AuditLog](ctx, r.db, q, auditLogColumns)
}
