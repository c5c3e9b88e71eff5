package model

type Product struct {
	Base
	Name          string   `gorm:"type:varchar(255);not null" json:"name"`
	Description   string   `gorm:"type:text" json:"description"`
	Images        []string `gorm:"type:text;serializer:json" json:"images"`
	CategoryID    string   `gorm:"type:varchar(36);not null;index" json:"category"`
	SubcategoryID *string  `gorm:"type:varchar(36);index" json:"subcategory,omitempty"`
	Price         Money    `gorm:"type:numeric(12,2);not null" json:"price"`
	Inventory     int      `gorm:"not null;default:0" json:"inventory"`
	Rating        float64  `gorm:"not null;default:0;index" json:"rating"`
	StoreID       string   `gorm:"type:varchar(36);not null;index" json:"store"`
	Active        bool     `gorm:"not null;index" json:"active"`

	Store *Store `gorm:"foreignKey:StoreID" json:"expand_store,omitempty"`
}
