package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// phone: optional leading +, then 10-15 digits.
var phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

func init() {
	validate = validator.New()
	// Report fields under their json names so the error surface matches the
	// wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
}

// Validate runs struct-tag validation and returns a field -> reason map, or
// nil when the value is valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = reason(err.Tag())
	}
	return errors
}

func reason(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be 10-15 digits with an optional leading +"
	default:
		return "is invalid"
	}
}
