package http

import (
	"errors"
	"math/big"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"loanchain-web/internal/domain/loan"
	"loanchain-web/internal/domain/notice"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []FieldError  `json:"details,omitempty"`
	Toast   *notice.Toast `json:"toast,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// token amount: decimal string, at least 1 wei, fits a uint256
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		if err != nil {
			return false
		}
		_, ok := loan.WeiFromTokens(d)
		return ok
	})
	// loan id: base-10 integer string, >= 0
	_ = v.RegisterValidation("loanid", func(fl validator.FieldLevel) bool {
		n, ok := new(big.Int).SetString(strings.TrimSpace(fl.Field().String()), 10)
		return ok && n.Sign() >= 0
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "amount":
			out = append(out, FieldError{Field: field, Message: "must be a positive number"})
		case "loanid":
			out = append(out, FieldError{Field: field, Message: "must be a non-negative integer"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
