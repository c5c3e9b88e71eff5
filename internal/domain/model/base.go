package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 全コレクション共通のID・作成/更新時刻
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated"`
}

// IDが空なら採番
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
