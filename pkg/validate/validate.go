// Package validate runs struct-tag validation and reports failures as a
// field → message map keyed by the JSON field name.
//
//	type Input struct {
//	    ID   *int    `json:"id"   validate:"required"`
//	    Name *string `json:"name" validate:"required,max=255"`
//	}
//
// Pointer fields make `required` a presence check: a JSON 0 or "" is
// present, an absent key is not.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates v. It returns an empty map when v is valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = message(field, fe)
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		if isString(fe.Kind()) {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "min":
		if isString(fe.Kind()) {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	default:
		return fmt.Sprintf("The %s field is invalid (%s).", field, fe.Tag())
	}
}

func isString(k reflect.Kind) bool { return k == reflect.String }
