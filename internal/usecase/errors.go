package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーの種類。HTTPError.Kindに入り、errors.Isで判定できる
var (
	ErrNotFound         = errors.New("not found")
	ErrFoodNotFound     = errors.New("food not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrEmptyCart        = errors.New("cart empty")
	ErrConflict         = errors.New("conflict")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrSignatureInvalid = errors.New("signature invalid")
	ErrValidation       = errors.New("validation error")
	ErrInternal         = errors.New("internal error")
)

type HTTPError struct {
	Status  int
	Message string
	Kind    error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Kind
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Kind:    kindForStatus(status),
	}
}

// 種類からステータスを決める
func newKindError(kind error, message string) error {
	return &HTTPError{
		Status:  statusForKind(kind),
		Message: message,
		Kind:    kind,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func errDB() error {
	return newKindError(ErrInternal, "db error")
}

func statusForKind(kind error) int {
	switch kind {
	case ErrNotFound, ErrFoodNotFound, ErrCartItemNotFound, ErrPaymentNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	case ErrEmptyCart, ErrInvalidMethod, ErrSignatureInvalid, ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	default:
		return ErrInternal
	}
}
