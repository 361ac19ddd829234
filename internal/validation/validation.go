package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/admintools/user-management-api/internal/constants"
)

// FieldError is one validation failure, reported per field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Register installs the custom rules on gin's binding validator and makes
// reported field names follow the json tags of the request structs.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v.RegisterValidation("password", validPassword)
}

// validPassword enforces 8 to 72 bytes with one uppercase letter, one
// lowercase letter and one digit. The upper bound keeps the value inside
// what bcrypt accepts, so hashing a rule-passing password cannot fail.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < constants.MinPasswordLength || len(password) > constants.MaxPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

// FieldErrorsFrom flattens a binding error into field/message pairs, keeping
// the first error per field. It returns nil when err carries no field-level
// details (malformed JSON, wrong types).
func FieldErrorsFrom(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	seen := make(map[string]bool, len(validationErrs))
	fieldErrors := make([]FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		fieldErrors = append(fieldErrors, FieldError{
			Field: field,
			Error: messageFor(fieldErr),
		})
	}

	return fieldErrors
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	case "password":
		return "must contain 8 to 72 characters, one uppercase letter, one lowercase letter, and one digit"
	default:
		return "is invalid"
	}
}
