// Package validation holds the boundary checks shared by every transport
// that accepts credentials: the HTTP API and the operator CLI.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries the user-facing messages of every failed field, in
// declaration order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// Validator adapts go-playground/validator to echo.Validator. A failed field
// is reported with the text of its "errmsg" tag, once per field.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	seen := make(map[string]struct{}, len(verrs))
	out := &ValidationError{}
	for _, fe := range verrs {
		if _, ok := seen[fe.StructField()]; ok {
			continue
		}
		seen[fe.StructField()] = struct{}{}

		msg := fe.Error()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if m := f.Tag.Get("errmsg"); m != "" {
				msg = m
			}
		}
		out.Messages = append(out.Messages, msg)
	}
	return out
}

// Credentials is the email and password pair accepted by sign-up and login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email" errmsg:"Invalid email address"`
	Password string `json:"password" validate:"min=8" errmsg:"Password must be at least 8 characters long."`
}

var defaultValidator = NewValidator()

// Validate reports every problem with c as a *ValidationError.
func (c *Credentials) Validate() error {
	return defaultValidator.Validate(c)
}
