package validator

import (
	"github.com/shopspring/decimal"
)

// 商品作成・更新の入力。更新ではnilの項目は変更しない
type ProductForm struct {
	Name        *string
	Description *string
	Price       *string
	Inventory   *int
	CategoryID  *string
	Images      []string
}

func ValidateProduct(f ProductForm, creating bool) error {
	errs := FieldErrors{}

	if f.Name != nil || creating {
		if errs.required("name", deref(f.Name), "Name is required") {
			errs.maxLen("name", *f.Name, 200, "Name must be at most 200 characters")
		}
	}
	if f.Price != nil || creating {
		if errs.required("price", deref(f.Price), "Price is required") {
			d, err := decimal.NewFromString(*f.Price)
			switch {
			case err != nil:
				errs["price"] = "Must be a valid price"
			case d.IsNegative():
				errs["price"] = "Price must be 0 or more"
			case d.Exponent() < -2:
				errs["price"] = "Price may have at most 2 decimals"
			}
		}
	}
	if f.Inventory != nil && *f.Inventory < 0 {
		errs["inventory"] = "Inventory must be 0 or more"
	}
	if f.CategoryID != nil || creating {
		errs.required("category", deref(f.CategoryID), "Category is required")
	}
	if len(f.Images) > 10 {
		errs["images"] = "At most 10 images"
	}
	return errs.OrNil()
}

// 評価は0〜5
func ValidateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return FieldErrors{"rating": "Rating must be between 0 and 5"}
	}
	return nil
}
