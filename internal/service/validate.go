package service

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
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "zorunlu alan"
	case "email":
		return "geçerli bir e-posta adresi olmalı"
	case "min":
		return fmt.Sprintf("en az %s karakter olmalı", fe.Param())
	case "max":
		return fmt.Sprintf("en fazla %s karakter olmalı", fe.Param())
	case "oneof":
		return fmt.Sprintf("şunlardan biri olmalı: %s", fe.Param())
	}
	return "geçersiz değer"
}

// validateStruct turns validator failures into a ValidationError keyed by
// the JSON path of each field.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields[ns] = fieldMessage(fe)
	}
	return &ValidationError{Message: "Geçersiz veri", Details: map[string]any{"fields": fields}}
}
