// Package forms parses and validates the dashboard's edit forms. Each form
// reports only the first failing rule, in field order.
package forms

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidationError is the single message shown for a rejected form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Message returns the user-visible text of a validation failure, or "" when
// err is not one.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// positive: a string that parses as a number greater than zero.
	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	})
	// decimal: empty, or a string that parses as a number.
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return true
		}
		_, err := decimal.NewFromString(s)
		return err == nil
	})
	return v
}

// check validates s and maps the first failure to a message. messages is
// keyed by "Field.tag", falling back to "Field".
func check(s any, messages map[string]string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg, ok = messages[fe.Field()]
	}
	if !ok {
		msg = fe.Field() + " is invalid"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

func trimmed(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

func checked(v url.Values, key string) bool {
	switch strings.ToLower(v.Get(key)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
