package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator checks request bodies against their struct tags.
// Field names in errors are the JSON names the client sent.
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validate      *Validator
)

// GetValidator returns the shared validator
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a request struct
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return strings.ToLower(fld.Name)
	}
	return name
}

// FormatValidationError turns validator errors into a field -> message map.
// max counts characters (runes), not bytes.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errs[e.Field()] = "This field is required"
		case "max":
			errs[e.Field()] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			errs[e.Field()] = "Invalid value"
		}
	}
	return errs
}
