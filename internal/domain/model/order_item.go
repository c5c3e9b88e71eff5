package model

// 注文時点の商品スナップショット（orders.itemsにJSONで保存）
type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Price       Money  `json:"price"`
	Quantity    int    `json:"quantity"`
}

func (i OrderItem) Subtotal() Money {
	return NewMoney(i.Price.Mul(decimalFromInt(i.Quantity)))
}
