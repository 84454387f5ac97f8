// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError represents a single field validation error with structured information.
type FieldError struct {
	path    string
	tag     string
	param   string
	value   interface{}
	message string
}

// Path returns the dotted configuration key that failed validation,
// for example "report.subjects".
func (e *FieldError) Path() string {
	return e.path
}

// Tag returns the validation tag that failed.
func (e *FieldError) Tag() string {
	return e.tag
}

// Param returns the parameter for the validation tag (e.g., "100" for "max=100").
func (e *FieldError) Param() string {
	return e.param
}

// Value returns the actual value that failed validation.
func (e *FieldError) Value() interface{} {
	return e.value
}

// Error returns a human-readable error message.
func (e *FieldError) Error() string {
	return e.message
}

// StructError represents a collection of validation errors.
type StructError struct {
	errors []FieldError
}

// Errors returns the slice of validation errors.
func (se *StructError) Errors() []FieldError {
	return se.errors
}

// Paths returns the failing keys in the order reported.
func (se *StructError) Paths() []string {
	out := make([]string, len(se.errors))
	for i := range se.errors {
		out[i] = se.errors[i].path
	}
	return out
}

// Error implements the error interface, returning a combined error message.
func (se *StructError) Error() string {
	if len(se.errors) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(se.errors))
	for i := range se.errors {
		messages[i] = se.errors[i].Error()
	}

	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// Field names in errors come from koanf struct tags so messages name the
// same keys users write in YAML and environment variables.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(koanfTagName)
	})

	return validate
}

// koanfTagName returns the koanf tag of a field, or its Go name if untagged.
func koanfTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *StructError if validation fails.
//
//	if err := validation.ValidateStruct(cfg); err != nil {
//	    return fmt.Errorf("invalid configuration: %w", err)
//	}
func ValidateStruct(s interface{}) error {
	v := GetValidator()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &StructError{
			errors: []FieldError{
				{
					path:    "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		path := keyPath(fieldErr.Namespace())
		fieldErrors[i] = FieldError{
			path:    path,
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr, path),
		}
	}

	return &StructError{errors: fieldErrors}
}

// keyPath drops the root struct name from a validator namespace:
// "Config.report.subjects" becomes "report.subjects".
func keyPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":      "%s is required",
	"filepath":      "%s must be a valid file path",
	"hostname_port": "%s must be a host:port address",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof":    "%s must be one of: %s",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"gt":       "%s must be greater than %s",
	"lt":       "%s must be less than %s",
	"ltefield": "%s must be less than or equal to %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError, path string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, path)
	}

	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, path, param)
	}

	return translateMinMax(fe, path, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind().String() == "string"

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
