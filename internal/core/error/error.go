package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// DatabaseErrorMessage describes durable store failures.
	DatabaseErrorMessage = "database operation failed"
	// DatabaseNotFoundMessage describes a missing row.
	DatabaseNotFoundMessage = "record not found"
	// UpstreamErrorMessage describes failures of third-party collaborators.
	UpstreamErrorMessage = "upstream service failed"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// BadRequest reports invalid client input with the given safe message.
func BadRequest(message string) *AppError {
	return New(nil, http.StatusBadRequest, message)
}

// NotFound reports a missing resource with the given safe message.
func NotFound(message string) *AppError {
	return New(nil, http.StatusNotFound, message)
}

// WrapUpstream wraps an error returned by an external collaborator.
func WrapUpstream(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, UpstreamErrorMessage)
}

// StatusOf returns the HTTP status carried by err, or 500 when err is not an AppError.
func StatusOf(err error) int {
	var app *AppError
	if errors.As(err, &app) && app.Status != 0 {
		return app.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message carried by err, or SystemErrorMessage.
func MessageOf(err error) string {
	var app *AppError
	if errors.As(err, &app) && app.Message != "" {
		return app.Message
	}
	return SystemErrorMessage
}
