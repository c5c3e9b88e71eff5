package model

// カートの明細。同じカートに同じ商品は1行だけ。
type CartItem struct {
	Base
	CartID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_items_cart_product" json:"cart"`
	ProductID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_items_cart_product" json:"product"`
	Quantity  int    `gorm:"not null" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"expand_product,omitempty"`
}

// カートの件数と合計
type CartSummary struct {
	TotalItems int   `json:"totalItems"`
	TotalPrice Money `json:"totalPrice"`
}
