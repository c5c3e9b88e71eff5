package model

// メール配信設定（ニュースレター購読）
type Notification struct {
	Base
	Email         string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Token         string  `gorm:"type:varchar(64);not null" json:"-"`
	UserID        *string `gorm:"type:varchar(36);index" json:"user,omitempty"`
	Communication bool    `gorm:"not null;default:false" json:"communication"`
	Newsletter    bool    `gorm:"not null;default:false" json:"newsletter"`
	Marketing     bool    `gorm:"not null;default:false" json:"marketing"`
}
