package model

type StorePlan string

const (
	StorePlanFree     StorePlan = "free"
	StorePlanStandard StorePlan = "standard"
	StorePlanPro      StorePlan = "pro"
)

// プランごとの上限
type PlanLimits struct {
	Stores   int64 `json:"stores"`
	Products int64 `json:"products"`
}

var planLimits = map[StorePlan]PlanLimits{
	StorePlanFree:     {Stores: 1, Products: 10},
	StorePlanStandard: {Stores: 3, Products: 100},
	StorePlanPro:      {Stores: 10, Products: 1000},
}

// 不明なプランはfree扱い
func LimitsFor(plan StorePlan) PlanLimits {
	if l, ok := planLimits[plan]; ok {
		return l
	}
	return planLimits[StorePlanFree]
}

const (
	DefaultProductLimit = 10
	DefaultTagLimit     = 5
	DefaultVariantLimit = 5
)

type Store struct {
	Base
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description  string    `gorm:"type:text" json:"description"`
	UserID       string    `gorm:"type:varchar(36);not null;index" json:"user"`
	Plan         StorePlan `gorm:"type:varchar(20);not null;default:'free'" json:"plan"`
	ProductLimit int       `gorm:"not null;default:10" json:"product_limit"`
	TagLimit     int       `gorm:"not null;default:5" json:"tag_limit"`
	VariantLimit int       `gorm:"not null;default:5" json:"variant_limit"`
	Active       bool      `gorm:"not null;index" json:"active"`
}

// 注目ストア表示用
type StoreWithProductCount struct {
	Store
	ProductCount int64 `json:"productCount"`
}
