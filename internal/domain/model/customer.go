package model

import "time"

// 注文をemailで集計した顧客（テーブルは持たない）
type Customer struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	OrderPlaced int       `json:"orderPlaced"`
	TotalSpent  Money     `json:"totalSpent"`
	Created     time.Time `json:"created"`
}

// 日別売上
type DailySales struct {
	Date   string `json:"date"`
	Amount Money  `json:"amount"`
	Orders int    `json:"orders"`
}
