// Package validation runs struct tag rules and reports one client facing message per failed field.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a JSON field name to the message for its first failed rule
type FieldErrors map[string]string

// Messages maps "field.rule" to a message. A message containing %v is formatted with the offending value.
type Messages map[string]string

var wordPattern = regexp.MustCompile(`^\w+$`)

// Validator wraps a go-playground validator configured for this service
type Validator struct {
	validator *validator.Validate
}

// New returns a Validator with the custom rules registered
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// "word" accepts English letters, digits and underscores only
	v.RegisterValidation("word", func(fl validator.FieldLevel) bool {
		return wordPattern.MatchString(fl.Field().String())
	})

	// Report fields by their JSON names so messages line up with the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return lowerFirst(fld.Name)
		}
		return name
	})

	return &Validator{validator: v}
}

// Struct validates s and returns every failed field, or nil when s is valid
func (v *Validator) Struct(s interface{}, messages Messages) FieldErrors {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"": err.Error()}
	}

	fields := make(FieldErrors, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		if _, seen := fields[field]; seen {
			continue
		}
		fields[field] = Message(messages, field, fe.Tag(), fe.Param(), fe.Value())
	}
	return fields
}

// Message looks up the message for a failed rule, falling back to a generic one
func Message(messages Messages, field, tag, param string, value interface{}) string {
	if msg, ok := messages[field+"."+tag]; ok {
		if strings.Contains(msg, "%v") {
			return fmt.Sprintf(msg, value)
		}
		return msg
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "url":
		return fmt.Sprintf("Invalid URL: %v", value)
	case "word":
		return fmt.Sprintf("%s can only contain English letters, numbers or underscores", field)
	default:
		return fmt.Sprintf("%s failed the %s rule", field, tag)
	}
}

// Add records a message for field unless that field already failed
func (f FieldErrors) Add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
