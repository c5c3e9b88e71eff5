package model

type Category struct {
	Base
	Name          string        `gorm:"type:varchar(255);not null" json:"name"`
	Slug          string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description   string        `gorm:"type:text" json:"description"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

type Subcategory struct {
	Base
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	CategoryID  string `gorm:"type:varchar(36);not null;index" json:"category"`
}
