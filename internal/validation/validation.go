// Package validation wraps go-playground/validator with the customer rules
// and converts failures into apperr validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/chile"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	if err := registerRules(v); err != nil {
		panic("registering validation rules: " + err.Error())
	}

	return &Validator{validate: v}
}

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("rut", func(fl validator.FieldLevel) bool {
		return chile.ValidRUT(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("clmobile", func(fl validator.FieldLevel) bool {
		return chile.ValidMobile(fl.Field().String())
	})
}

// Struct validates s and returns the first failing field as an
// *apperr.ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	fe := verrs[0]

	return apperr.Validation(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "rut":
		return "must be a valid RUT"
	case "clmobile":
		return "must be a valid Chilean mobile number"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

var std = New()

// Struct validates s with the shared Validator.
func Struct(s any) error {
	return std.Struct(s)
}
