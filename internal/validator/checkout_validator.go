package validator

import "strings"

// 購入フォームの入力
type CheckoutForm struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
	Notes      string
}

// 購入フォームを検証
func ValidateCheckout(f CheckoutForm) error {
	errs := FieldErrors{}

	if errs.required("name", f.Name, "Name is required") {
		errs.maxLen("name", f.Name, 100, "Name is too long")
	}
	if errs.required("email", f.Email, "Email is required") && !IsEmail(f.Email) {
		errs["email"] = "Invalid email address"
	}
	if errs.required("phone", f.Phone, "Phone number is required") && len(strings.TrimSpace(f.Phone)) < 7 {
		errs["phone"] = "Invalid phone number"
	}
	errs.required("address", f.Address, "Address is required")
	errs.required("city", f.City, "City is required")
	errs.required("state", f.State, "State is required")
	errs.required("postalCode", f.PostalCode, "Postal code is required")
	errs.required("country", f.Country, "Country is required")
	errs.maxLen("notes", f.Notes, 1000, "Notes are too long")

	return errs.OrNil()
}
