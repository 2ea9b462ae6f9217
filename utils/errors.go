package utils

import (
	"errors"
	"fmt"
	"movie_reservation/constants"
	"net/http"
)

type ErrorKind int

const (
	KindMissingParameter ErrorKind = iota
	KindValidationFailed
	KindUnauthorized
	KindConflict
	KindNotFound
	KindInvalidState
	KindInternal
)

// AppError is a failure the client is allowed to see.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Detail  any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func MissingParameter() *AppError {
	return &AppError{Kind: KindMissingParameter, Status: http.StatusBadRequest, Message: constants.MISSING_PARAMETER}
}

func ValidationFailed(message string, detail any) *AppError {
	return &AppError{Kind: KindValidationFailed, Status: http.StatusBadRequest, Message: message, Detail: detail}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Status: http.StatusBadRequest, Message: message}
}

// NotFound builds "<entity> not found".
func NotFound(entity string) *AppError {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: entity + " not found"}
}

func InvalidState(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Status: http.StatusBadRequest, Message: message}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: constants.ERROR_INTERNAL_ERROR, Err: err}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// PublicMessage is the text a client may see for err: the AppError message, or the
// generic internal message for internal and untyped errors.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return constants.ERROR_INTERNAL_ERROR
}
