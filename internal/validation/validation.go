// Package validation checks request payloads before they reach a store.
// Stores trust their inputs; this is the only place field rules live.
package validation

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Foster13/money-month-tracker/internal/currency"
)

// Error lists every failing field of a payload, keyed by its JSON name.
type Error struct {
	Fields map[string]string `json:"fields"`
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(slices.Sorted(maps.Values(e.Fields)), "; ")
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currency.Code(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// Struct validates s and returns an *Error describing every failing field.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating: %w", err)
	}

	out := &Error{Fields: make(map[string]string, len(verrs))}

	for _, fe := range verrs {
		out.Fields[fe.Field()] = message(fe, label(s, fe))
	}

	return out
}

// label is the human name of a field: its `label` tag, else the Go field name.
func label(s any, fe validator.FieldError) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
		}
	}

	return fe.StructField()
}

func message(fe validator.FieldError, name string) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		if fe.Param() == "1" && fe.Kind() == reflect.String {
			return name + " is required"
		}

		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return name + " must be positive"
		}

		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return name + " must not be negative"
		}

		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "currency":
		codes := make([]string, 0, len(currency.All()))
		for _, c := range currency.All() {
			codes = append(codes, string(c))
		}

		return fmt.Sprintf("%s must be one of %s", name, strings.Join(codes, ", "))
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return name + " must be a YYYY-MM-DD date"
	case "hexcolor":
		return name + " must be a hex color"
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}
