// Package validation checks submitted form values against their final display formats.
//
// Besides the stock go-playground tags it registers:
//
//	cpf       000.000.000-00
//	cep       00000-000
//	phone_br  (00) 0 0000-0000
//	date_br   dd/mm/aaaa, and the date must exist
//	money_br  R$ 1.234,56
//	uf        one of the 27 federative unit abbreviations
//	notblank  not empty after trimming spaces
//
// Only the layout is checked. CPF check digits are not verified.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	dErrors "cadastro/pkg/domain-errors"
	"cadastro/pkg/mask"
)

var defaultValidator = newValidator()

var federativeUnits = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("cpf", formatRule(mask.KindCPF))
	_ = v.RegisterValidation("cep", formatRule(mask.KindCEP))
	_ = v.RegisterValidation("phone_br", formatRule(mask.KindPhone))
	_ = v.RegisterValidation("money_br", formatRule(mask.KindMoney))
	_ = v.RegisterValidation("date_br", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !mask.Complete(mask.KindDate, s) {
			return false
		}
		_, err := time.Parse("02/01/2006", s)
		return err == nil
	})
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		_, ok := federativeUnits[fl.Field().String()]
		return ok
	})
	return v
}

func formatRule(k mask.Kind) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return mask.Complete(k, fl.Field().String())
	}
}

// fieldName reports fields by their form tag, falling back to the json tag and then the Go
// field name.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Validate checks v with the default validator. The first failing field is returned as a
// domain validation error carrying that field's name.
func Validate(v any) error {
	err := defaultValidator.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "cannot validate value")
	}
	fe := validationErrs[0]
	return &dErrors.Error{
		Code:    dErrors.CodeValidation,
		Field:   fe.Field(),
		Message: ErrorMessage(fe),
	}
}

// ErrorMessage turns a single field failure into the message shown next to the field.
func ErrorMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required", "notblank":
		return "is required"
	case "cpf":
		return "must match 000.000.000-00"
	case "cep":
		return "must match 00000-000"
	case "phone_br":
		return "must match (00) 0 0000-0000"
	case "date_br":
		return "must be a valid date in dd/mm/aaaa"
	case "money_br":
		return "must be an amount like R$ 1.234,56"
	case "uf":
		return "must be a federative unit abbreviation"
	case "url", "http_url":
		return "must be a valid url"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return "is invalid"
	}
}
