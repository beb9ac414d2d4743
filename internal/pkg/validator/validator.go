package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

// RadiusOptions lists the selectable search radii in kilometres.
var RadiusOptions = []int{5, 10, 20}

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Radius must be one of the offered options
	validate.RegisterValidation("radius", func(fl validator.FieldLevel) bool {
		radius := int(fl.Field().Int())
		for _, r := range RadiusOptions {
			if radius == r {
				return true
			}
		}
		return false
	})

	// 24h clock time "HH:MM"; empty is left to "required"
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse("15:04", value)
		return err == nil
	})

	// Calendar date "YYYY-MM-DD"; empty is left to "required"
	validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse("2006-01-02", value)
		return err == nil
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range validationErrors {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "radius":
			errors[field] = "Invalid radius. Must be: 5, 10, or 20"
		case "hhmm":
			errors[field] = "Invalid time. Must be HH:MM"
		case "isodate":
			errors[field] = "Invalid date. Must be YYYY-MM-DD"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
