package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/validator"
)

// handlerがそのままステータスに変換するエラー
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 入力エラー（422）
func NewValidationError(fields map[string]string) error {
	return &HTTPError{
		Status:  http.StatusUnprocessableEntity,
		Message: "validation error",
		Fields:  fields,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// validatorのエラーを422に、それ以外はそのまま
func fromValidation(err error) error {
	var fe validator.FieldErrors
	if errors.As(err, &fe) {
		return NewValidationError(fe)
	}
	return err
}

func errDB() error {
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

func errNotFound() error {
	return NewHTTPError(http.StatusNotFound, "not found")
}
