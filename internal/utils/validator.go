package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"little-lemon/domain"
)

var Validate *validator.Validate

func InitValidator() {
	if Validate != nil {
		return
	}
	Validate = validator.New(validator.WithRequiredStructEnabled())
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationFields flattens validator errors into a field -> message map
// keyed by the json names of the fields.
func ValidationFields(err error) map[string]string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return fe.Fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, v := range verrs {
		switch v.Tag() {
		case "required":
			fields[v.Field()] = "This field is required."
		case "uuid":
			fields[v.Field()] = "Must be a valid UUID."
		case "numeric":
			fields[v.Field()] = "A valid number is required."
		case "email":
			fields[v.Field()] = "Enter a valid email address."
		case "oneof":
			fields[v.Field()] = "Must be one of: " + v.Param() + "."
		default:
			fields[v.Field()] = "Failed on the '" + v.Tag() + "' rule."
		}
	}
	return fields
}
