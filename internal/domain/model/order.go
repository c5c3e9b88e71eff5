package model

import "strings"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderStatuses...)
}

func (s OrderStatus) Valid() bool {
	for _, v := range orderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// 注文。作成後はStatus以外変更しない。
type Order struct {
	Base
	UserID    *string     `gorm:"type:varchar(36);index" json:"user,omitempty"`
	StoreID   string      `gorm:"type:varchar(36);not null;index" json:"store"`
	Items     []OrderItem `gorm:"type:text;serializer:json;not null" json:"items"`
	Quantity  int         `gorm:"not null" json:"quantity"`
	Amount    Money       `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Email     string      `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone     string      `gorm:"type:varchar(50)" json:"phone"`
	AddressID string      `gorm:"type:varchar(36);not null" json:"address"`
	Notes     string      `gorm:"type:text" json:"notes,omitempty"`

	Address *Address `gorm:"foreignKey:AddressID" json:"expand_address,omitempty"`
}

// 表示用の注文番号（ORD-XXXXXXXX）
func (o Order) Number() string {
	return OrderNumber(o.ID)
}

func OrderNumber(id string) string {
	tail := id
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	return "ORD-" + strings.ToUpper(tail)
}
