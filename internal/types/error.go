package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types carried by CustomError. The error handler maps each one to a status and body.
const (
	TypeValidation   = "validation"
	TypeCast         = "cast"
	TypeNotFound     = "not_found"
	TypeUnauthorized = "unauthorized"
	TypeInvalidToken = "invalid_token"
	TypeForbidden    = "forbidden"
	TypeUnmatched    = "unmatched"
)

const (
	MessageNotFound     = "Not found"
	MessageInvalidToken = "Token is missing or invalid"
	MessageForbidden    = "Missing permission for modifying this resource"
	MessageUnmatched    = "Unknown endpoint"
)

type CustomError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *CustomError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%d: %s %v [type: %s]", e.Code, e.Message, e.Fields, e.Type)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewValidationError reports every invalid field at once.
func NewValidationError(fields map[string]string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Type:    TypeValidation,
		Fields:  fields,
	}
}

// NewBadRequest is a validation failure that is not tied to a field, e.g. an unreadable body.
func NewBadRequest(message string) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: message, Type: TypeValidation}
}

// NewCastError reports an identifier that could not be parsed.
func NewCastError(value, path string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("Cast to UUID failed for value %q at path %q", value, path),
		Type:    TypeCast,
	}
}

func NewNotFound() *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: MessageNotFound, Type: TypeNotFound}
}

func NewUnauthorized(message string) *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: message, Type: TypeUnauthorized}
}

func NewInvalidToken() *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: MessageInvalidToken, Type: TypeInvalidToken}
}

func NewForbidden() *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: MessageForbidden, Type: TypeForbidden}
}

func NewUnmatched() *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: MessageUnmatched, Type: TypeUnmatched}
}

// IsType reports whether err is (or wraps) a CustomError of the given type.
func IsType(err error, errorType string) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Type == errorType
}
