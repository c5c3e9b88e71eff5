package validator

// ストア作成・更新の入力。更新ではnilの項目は変更しない
type StoreForm struct {
	Name        *string
	Slug        *string
	Description *string
}

func ValidateStore(f StoreForm, creating bool) error {
	errs := FieldErrors{}

	if f.Name != nil || creating {
		name := deref(f.Name)
		if errs.required("name", name, "Store name is required") {
			if len([]rune(name)) < 3 {
				errs["name"] = "Store name must be at least 3 characters"
			}
			errs.maxLen("name", name, 50, "Store name must be at most 50 characters")
		}
	}
	if f.Slug != nil && *f.Slug != "" && !IsSlug(*f.Slug) {
		errs["slug"] = "Slug may contain lowercase letters, numbers and dashes"
	}
	if f.Description != nil {
		errs.maxLen("description", *f.Description, 500, "Description must be at most 500 characters")
	}
	return errs.OrNil()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
