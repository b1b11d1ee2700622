package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 256
	// PasswordSpecials lists the characters that satisfy the special-character rule.
	PasswordSpecials = "!@#$%^&*"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

var validate = newValidator()

// FieldError describes one rule a field failed.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors is the structured result of a failed validation.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed any rule.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validate checks v against its validate tags. It returns nil when v is valid.
func Validate(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "form", Rule: "invalid", Message: err.Error()}}
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// PasswordPolicyError returns nil when pw satisfies the complexity policy:
// 8 to 256 characters with an ASCII lowercase letter, an ASCII uppercase
// letter, an ASCII digit and one of PasswordSpecials.
func PasswordPolicyError(pw string) error {
	n := utf8.RuneCountInString(pw)
	if n < passwordMinLength || n > passwordMaxLength {
		return fmt.Errorf("must be between %d and %d characters", passwordMinLength, passwordMaxLength)
	}

	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		}
	}

	switch {
	case !lower:
		return errors.New("needs a lowercase letter")
	case !upper:
		return errors.New("needs an uppercase letter")
	case !digit:
		return errors.New("needs a digit")
	case !special:
		return fmt.Errorf("needs one of %s", PasswordSpecials)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		return PasswordPolicyError(fl.Field().String()) == nil
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register %s validation: %v", tag, err))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "eqfield":
		return "must match password"
	case "password":
		if err := PasswordPolicyError(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
		return "does not meet the password policy"
	case "username":
		return "may only contain letters, digits, '.', '_' and '-' (1-64 characters)"
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	default:
		return "is invalid"
	}
}
