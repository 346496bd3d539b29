package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/staff"
)

// NewValidator returns a validator that reports JSON field names, understands
// decimal.Decimal in numeric comparisons, and knows the "cpf" tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return staff.ValidCPF(fl.Field().String())
	})

	return v
}
