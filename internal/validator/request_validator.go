package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// ユーザー名は英数字と._-で3〜50文字
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{3,50}$`)

// 電話番号は数字と+のみ
var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// echo.Validatorとして登録する
type RequestValidator struct {
	v *validator.Validate
}

func New() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || phonePattern.MatchString(s)
	})
	return &RequestValidator{v: v}
}

// 最初に失敗したフィールドだけをメッセージにする
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, message(verrs[0]))
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "email":
		return "invalid email format"
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	case "username":
		return "invalid username"
	case "phone":
		return "invalid phone"
	case "len", "numeric":
		return "invalid " + field
	default:
		return "invalid " + field
	}
}
