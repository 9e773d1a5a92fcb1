// Package validate собирает валидатор с доменными правилами портала:
// индийские мобильные номера и форматы государственных документов.
package validate

import (
	"github.com/go-playground/validator"

	"github.com/nerdshive/membership-portal/internal/registration"
)

// New возвращает валидатор с зарегистрированными доменными тегами:
// inmobile, aadhaar, pan, gst.
func New() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("inmobile", func(fl validator.FieldLevel) bool {
		return registration.MobileRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("aadhaar", func(fl validator.FieldLevel) bool {
		return registration.AadhaarRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return registration.PANRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("gst", func(fl validator.FieldLevel) bool {
		return registration.GSTRe.MatchString(fl.Field().String())
	})
	return v
}
