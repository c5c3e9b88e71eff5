package repository

import (
	"context"

	"storefront/internal/domain/model"
	"storefront/internal/filter"
)

// 監査ログの保存・一覧取得の約束。
// フィルタに使えるフィールド: store, actor, action, resource_type, resource_id, created
type AuditLogRepository interface {
	//監査ログを1件保存
	Create(ctx context.Context, log *model.AuditLog) error

	//監査ログを条件で一覧取得。
	List(ctx context.Context, q filter.Query) ([]model.AuditLog, int64, error)
}
