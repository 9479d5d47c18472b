package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxPrice is the first value that no longer fits numeric(10,2).
var maxPrice = decimal.New(1, 8)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			if err != nil {
				return false
			}
			return IsValidPrice(d)
		})

		validate = v
	})
	return validate
}

// IsValidPrice reports whether d is a non-negative amount with at most two
// fractional digits that fits a numeric(10,2) column.
func IsValidPrice(d decimal.Decimal) bool {
	if d.IsNegative() || d.GreaterThanOrEqual(maxPrice) {
		return false
	}
	return d.Equal(d.Truncate(2))
}

// Validate checks an insert payload against its validate tags. It returns a
// *ValidationError listing every failed field, or nil.
func Validate(in any) error {
	err := validatorInstance().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Issues: []FieldIssue{{Rule: "invalid", Message: err.Error()}}}
	}

	issues := make([]FieldIssue, len(verrs))
	for i, fe := range verrs {
		issues[i] = FieldIssue{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Message: issueMessage(fe),
		}
	}
	return &ValidationError{Issues: issues}
}

// fieldPath drops the leading struct name from the namespace, so
// "InsertProduct.images[1]" becomes "images[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "price":
		return "must be a non-negative amount with at most two decimal places"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
