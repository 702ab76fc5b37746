package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	reHex32  = regexp.MustCompile(`^[a-f0-9]{32}$`)
	reOTP6   = regexp.MustCompile(`^[0-9]{6}$`)
	reAppNum = regexp.MustCompile(`^PMC-[0-9]{4}-[0-9]{6}$`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// officer id = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// otp codes are exactly 6 digits
	_ = v.RegisterValidation("otp6", func(fl validator.FieldLevel) bool {
		return reOTP6.MatchString(fl.Field().String())
	})
	// public application numbers like PMC-2026-483920
	_ = v.RegisterValidation("appnum", func(fl validator.FieldLevel) bool {
		return reAppNum.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "otp6":
			out = append(out, FieldError{Field: field, Message: "must be a 6-digit code"})
		case "appnum":
			out = append(out, FieldError{Field: field, Message: "must be a valid application number"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
