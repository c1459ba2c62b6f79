package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their serialized name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank rejects strings made only of whitespace
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// validateFields runs the struct tag rules and turns the first failure into
// a readable "<entity> <field> ..." error
func validateFields(entity string, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("invalid %s: %w", entity, err)
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%s %s cannot be empty", entity, field)
	case "url":
		return fmt.Errorf("%s %s must be a valid URL", entity, field)
	case "gte", "min":
		return fmt.Errorf("%s %s must be at least %s", entity, field, fe.Param())
	case "max":
		return fmt.Errorf("%s %s must be at most %s characters", entity, field, fe.Param())
	default:
		return fmt.Errorf("%s %s is invalid", entity, field)
	}
}
