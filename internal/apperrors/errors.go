package apperrors

import (
	"fmt"
	"net/http"
)

// Stable error codes surfaced in the HTTP error envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeEmailTaken         = "EMAIL_ALREADY_REGISTERED"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error is the typed error the service layer raises. The HTTP boundary is the
// only place it is translated into a response envelope.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(statusCode int, code, message string) *Error {
	return &Error{StatusCode: statusCode, Code: code, Message: message}
}

func (e *Error) WithDetails(details string) *Error {
	c := *e
	c.Details = details
	return &c
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, CodeValidation, message)
}

func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
}

func InvalidToken() *Error {
	return New(http.StatusUnauthorized, CodeInvalidToken, "Invalid authentication token")
}

func TokenExpired() *Error {
	return New(http.StatusUnauthorized, CodeTokenExpired, "Your session has expired. Please log in again.")
}

func TaskNotFound() *Error {
	return New(http.StatusNotFound, CodeTaskNotFound, "Task not found")
}

func UserNotFound() *Error {
	return New(http.StatusNotFound, CodeUserNotFound, "User not found")
}

func EmailTaken() *Error {
	return New(http.StatusConflict, CodeEmailTaken, "Email is already registered")
}

func RouteNotFound(method, path string) *Error {
	return New(http.StatusNotFound, CodeRouteNotFound, fmt.Sprintf("Route %s %s not found", method, path))
}

func RateLimited() *Error {
	return New(http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.")
}

func Internal(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return New(http.StatusInternalServerError, CodeInternal, message)
}
