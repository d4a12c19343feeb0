package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct checks a request payload against its validate tags and
// returns per-field messages, or nil when the payload is fine.
func ValidateStruct(payload interface{}) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required"
		case "min":
			out[field] = fmt.Sprintf("Must be at least %s", fe.Param())
		case "max":
			out[field] = fmt.Sprintf("Must be at most %s", fe.Param())
		case "email":
			out[field] = "Must be a valid email address"
		default:
			out[field] = fmt.Sprintf("Failed %s validation", fe.Tag())
		}
	}
	return out
}
