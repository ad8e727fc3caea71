// Package validator wraps go-playground/validator with the tags and messages
// used by every request DTO. Field errors are keyed by JSON name.
package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ziplofy/storeconfig/pkg/ident"
)

// MaxThemeLength bounds storefront theme names, which become storage key
// prefixes.
const MaxThemeLength = 32

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	must(v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return ident.Valid(fl.Field().String())
	}))
	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		return IsTheme(fl.Field().String())
	}))
	must(v.RegisterValidation("decimals", func(fl validator.FieldLevel) bool {
		places, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return Decimals(fl.Field().Float()) <= places
	}))
	return v
}

// Decimals returns the number of fractional digits in the shortest decimal
// form of f, so 19.99 has 2 even though its binary value is inexact.
func Decimals(f float64) int {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if _, frac, ok := strings.Cut(s, "."); ok {
		return len(frac)
	}
	return 0
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// IsTheme reports whether s is usable as a theme name: 1 to MaxThemeLength
// ASCII letters or digits.
func IsTheme(s string) bool {
	if s == "" || len(s) > MaxThemeLength {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// Validate checks s against its validate tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// Var checks a single value, e.g. Var(id, "objectid").
func Var(v any, tag string) error {
	return validate.Var(v, tag)
}

// FormatValidationErrors maps each failing field to a readable message.
// Nested fields keep their parent path ("minimumPurchase.amount"). Errors
// that did not come from the validator yield an empty map.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, fe := range ve {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}
