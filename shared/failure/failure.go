package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that knows the HTTP status it maps to. Fields holds one
// message per request field for validation failures.
type Failure struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return newFailure(code, err.Error())
}

// BadRequest wraps err as a 400; nil stays nil.
func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound takes the full message, e.g. "booking not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// Unprocessable reports a well-formed request whose fields break a booking or cabin rule.
func Unprocessable(msg string, fields map[string]string) error {
	return &Failure{Code: http.StatusUnprocessableEntity, Message: msg, Fields: fields}
}

// InternalError wraps err as a 500; nil stays nil.
func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

// GetCode falls back to 500 for anything that is not a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

func GetFields(err error) map[string]string {
	if fail, ok := as(err); ok {
		return fail.Fields
	}

	return nil
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}
