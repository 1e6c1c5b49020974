// Package apperr defines the application error taxonomy and its mapping to
// HTTP status codes. Handlers translate service-layer sentinel errors into
// these and write a fixed, non-leaking {"detail": ...} body; the underlying
// cause is logged, never exposed.
package apperr

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes by failure class.
const (
	CodeDuplicateCredential   = "DUPLICATE_CREDENTIAL"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInvalidOrExpiredToken = "INVALID_OR_EXPIRED_TOKEN"
	CodeExpiredRefreshToken   = "EXPIRED_REFRESH_TOKEN"
	CodeNotFound              = "NOT_FOUND"
	CodeForbidden             = "FORBIDDEN"
	CodeValidation            = "VALIDATION_ERROR"
	CodeInternal              = "INTERNAL_ERROR"
)

// Error is a structured application error with an HTTP status.
type Error struct {
	Code       string
	Detail     string
	HTTPStatus int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause attaches the underlying error for logging purposes. The cause is
// never serialized to the client.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Code: e.Code, Detail: e.Detail, HTTPStatus: e.HTTPStatus, Cause: cause}
}

func Duplicate(detail string) *Error {
	return &Error{Code: CodeDuplicateCredential, Detail: detail, HTTPStatus: http.StatusConflict}
}

func InvalidCredentials(detail string) *Error {
	return &Error{Code: CodeInvalidCredentials, Detail: detail, HTTPStatus: http.StatusUnauthorized}
}

func InvalidToken(detail string) *Error {
	return &Error{Code: CodeInvalidOrExpiredToken, Detail: detail, HTTPStatus: http.StatusUnauthorized}
}

func ExpiredRefresh(detail string) *Error {
	return &Error{Code: CodeExpiredRefreshToken, Detail: detail, HTTPStatus: http.StatusUnauthorized}
}

func NotFound(detail string) *Error {
	return &Error{Code: CodeNotFound, Detail: detail, HTTPStatus: http.StatusNotFound}
}

func Forbidden(detail string) *Error {
	return &Error{Code: CodeForbidden, Detail: detail, HTTPStatus: http.StatusForbidden}
}

func Validation(detail string) *Error {
	return &Error{Code: CodeValidation, Detail: detail, HTTPStatus: http.StatusBadRequest}
}

func Internal(detail string) *Error {
	return &Error{Code: CodeInternal, Detail: detail, HTTPStatus: http.StatusInternalServerError}
}

// response is the wire shape for every error the API emits.
type response struct {
	Detail string `json:"detail"`
}

// Write serializes an application error to the response writer.
func Write(w http.ResponseWriter, err *Error) {
	WriteDetail(w, err.HTTPStatus, err.Detail)
}

// WriteDetail writes an arbitrary status with a {"detail": ...} body.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{Detail: detail})
}
