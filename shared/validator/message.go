package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// messageTag overrides the templated message of every rule on a top-level field.
const messageTag = "message"

var templates = map[string]string{
	"required":    "{field} is required",
	"gt":          "{field} must be greater than {param}",
	"gte":         "{field} must be greater than or equal to {param}",
	"lte":         "{field} must be less than or equal to {param}",
	"ltefield":    "{field} must be less than or equal to {param}",
	"oneof":       "{field} must be one of {param}",
	"max":         "{field} must be less than or equal to {param}",
	"min":         "{field} must be greater than or equal to {param}",
	"email":       "{field} must be a valid email address",
	"uuid":        "{field} must be a valid UUID",
	"mimetypes":   "{field} must be one of {param}",
	"maxfilesize": "{field} must not be larger than {param} MB",
	"empty":       "{field} must be empty",
}

func messages(err error, dataType reflect.Type) (string, map[string]string) {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error(), nil
	}

	first := ""
	fields := map[string]string{}

	for _, valErr := range valErrors {
		msg := render(valErr, dataType)

		if _, seen := fields[valErr.Field()]; !seen {
			fields[valErr.Field()] = msg
		}

		if first == "" {
			first = msg
		}
	}

	return first, fields
}

func render(valErr val.FieldError, dataType reflect.Type) string {
	if override := overrideFor(valErr, dataType); override != "" {
		return override
	}

	template := templates[valErr.Tag()]
	if template == "" {
		return valErr.Error()
	}

	msg := strings.ReplaceAll(template, "{field}", valErr.Field())

	return strings.ReplaceAll(msg, "{param}", valErr.Param())
}

func overrideFor(valErr val.FieldError, dataType reflect.Type) string {
	for dataType != nil && dataType.Kind() == reflect.Pointer {
		dataType = dataType.Elem()
	}

	if dataType == nil || dataType.Kind() != reflect.Struct {
		return ""
	}

	field, ok := dataType.FieldByName(valErr.StructField())
	if !ok {
		return ""
	}

	return field.Tag.Get(messageTag)
}
