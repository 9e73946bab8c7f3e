// Package tags exposes identifier validation to form layers built on
// go-playground/validator. Register adds one tag per identifier type, so a
// struct can declare
//
//	type Signup struct {
//	    CPF string `validate:"required,br_cpf"`
//	    RUT string `validate:"omitempty,cl_rut_strict"`
//	}
//
// Each type gets a lenient tag ("br_cpf") and a strict tag ("br_cpf_strict").
// Empty strings pass; combine with "required" to reject them.
package tags

import (
	"reflect"

	"github.com/go-playground/validator/v10"

	"idcheck/internal/idnumber"
)

// StrictSuffix marks the strict variant of a tag.
const StrictSuffix = "_strict"

// Register binds every definition in reg to v.
func Register(v *validator.Validate, reg *idnumber.Registry) error {
	for _, def := range reg.Definitions() {
		tag := def.Type().String()
		if err := v.RegisterValidation(tag, fieldFunc(def, false)); err != nil {
			return err
		}
		if err := v.RegisterValidation(tag+StrictSuffix, fieldFunc(def, true)); err != nil {
			return err
		}
	}
	return nil
}

// New returns a validator with required-struct checks enabled and all
// built-in identifier tags registered.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := Register(v, idnumber.Default); err != nil {
		return nil, err
	}
	return v, nil
}

func fieldFunc(def idnumber.Definition, strict bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		_, err := def.Validate(field.String(), idnumber.Options{Strict: strict})
		return err == nil
	}
}
