// Package validation validates decoded request bodies using struct tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error reports the fields that failed validation, keyed by JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return strings.Join(parts, "; ")
}

var rgbColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validator wraps go-playground/validator with field-keyed error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports fields by their JSON tag names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// rgbcolor accepts #rgb and #rrggbb; hexcolor also admits an alpha channel.
	v.RegisterValidation("rgbcolor", func(fl validator.FieldLevel) bool {
		return rgbColor.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate checks s and returns *Error when any field fails.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// IsError reports whether err is a validation failure.
func IsError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = friendlyMessage(e)
	}

	return &Error{Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "hexcolor", "rgbcolor":
		return "must be a hex color like #aabbcc"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
