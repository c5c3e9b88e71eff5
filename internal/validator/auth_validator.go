package validator

import "strings"

// 弱いパスワード一覧
var weakPasswords = map[string]struct{}{
	"password":    {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwertyuiop":  {},
	"letmein123":  {},
	"admin123":    {},
}

// 会員登録の入力を検証
func ValidateRegister(email, password string) error {
	errs := FieldErrors{}

	if errs.required("email", email, "Email is required") && !IsEmail(email) {
		errs["email"] = "Invalid email address"
	}
	if errs.required("password", password, "Password is required") {
		// パスワード最低文字数（8）
		if len(password) < 8 {
			errs["password"] = "Password must be at least 8 characters"
		} else if _, weak := weakPasswords[strings.ToLower(password)]; weak {
			errs["password"] = "Password is too weak"
		}
	}
	return errs.OrNil()
}

// ログインの入力を検証
func ValidateLogin(email, password string) error {
	errs := FieldErrors{}
	if errs.required("email", email, "Email is required") && !IsEmail(email) {
		errs["email"] = "Invalid email address"
	}
	errs.required("password", password, "Password is required")
	return errs.OrNil()
}

func ValidateEmail(email string) error {
	if !IsEmail(email) {
		return FieldErrors{"email": "Invalid email address"}
	}
	return nil
}
