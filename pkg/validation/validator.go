package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level validation message returned under "details"
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New returns a validator with the service's custom rules registered and
// field names reported by their json tag.
func New() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func
	_ = validate.RegisterValidation("password", validatePassword)
	_ = validate.RegisterValidation("maxbytes", validateMaxBytes)

	return validate
}

// validatePassword requires at least one ASCII letter and one ASCII digit
func validatePassword(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
		if hasLetter && hasDigit {
			return true
		}
	}
	return false
}

// validateMaxBytes limits the encoded length in bytes rather than runes
func validateMaxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Translate converts validator errors into field-level messages. Any other
// error is returned as a single message without a field.
func Translate(err error) []FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Message: err.Error()}}
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		msg, exists := CustomMessage(e.Field(), e.Tag())
		if !exists {
			msg = DefaultMessage(e.Field(), e.Tag(), e.Param())
		}
		details = append(details, FieldError{Field: e.Field(), Message: msg})
	}
	return details
}
