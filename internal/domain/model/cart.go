package model

// カートはcartId cookieで識別する。ログイン中ならUserIDも持つ。
type Cart struct {
	Base
	UserID *string    `gorm:"type:varchar(36);index" json:"user,omitempty"`
	Items  []CartItem `gorm:"foreignKey:CartID" json:"-"`
}
