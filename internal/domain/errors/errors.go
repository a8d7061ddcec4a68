package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies failures so callers can react without matching messages.
type Kind int

const (
	KindInternal Kind = iota
	// KindValidation is bad input the user can correct and retry.
	KindValidation
	KindConflict
	// KindAuth covers bad credentials and missing sessions. Its messages stay generic.
	KindAuth
	KindNotFound
	// KindHashing means the environment is broken. It is never retried.
	KindHashing
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindHashing:
		return "hashing"
	default:
		return "internal"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCodeFor(kind),
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func httpCodeFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the failure class
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information.
// The copy is still matched by errors.Is against the original.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is makes copies produced by WithDetails match their template.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	// Validation
	ErrBlankField = NewBaseError(
		KindValidation,
		"BLANK_FIELD",
		"blank field",
		"",
	)

	ErrPasswordMismatch = NewBaseError(
		KindValidation,
		"PASSWORD_MISMATCH",
		"mismatch",
		"",
	)

	ErrPasswordTooLong = NewBaseError(
		KindValidation,
		"PASSWORD_TOO_LONG",
		"password must be at most 72 bytes",
		"",
	)

	ErrInvalidPriceFormat = NewBaseError(
		KindValidation,
		"INVALID_PRICE_FORMAT",
		"price must be a valid number",
		"",
	)

	ErrNonPositivePrice = NewBaseError(
		KindValidation,
		"NON_POSITIVE_PRICE",
		"price must be greater than zero",
		"",
	)

	ErrValidationFailed = NewBaseError(
		KindValidation,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Conflict
	ErrUsernameTaken = NewBaseError(
		KindConflict,
		"USERNAME_TAKEN",
		"username taken",
		"",
	)

	// Auth
	ErrInvalidCredentials = NewBaseError(
		KindAuth,
		"INVALID_CREDENTIALS",
		"invalid credentials",
		"",
	)

	ErrNotLoggedIn = NewBaseError(
		KindAuth,
		"NOT_LOGGED_IN",
		"not logged in",
		"",
	)

	ErrProductNotOwned = NewBaseError(
		KindAuth,
		"PRODUCT_NOT_OWNED",
		"product belongs to another user",
		"",
	)

	// Not found
	ErrProductNotFound = NewBaseError(
		KindNotFound,
		"PRODUCT_NOT_FOUND",
		"product not found",
		"",
	)

	// Hashing
	ErrPasswordHashFailed = NewBaseError(
		KindHashing,
		"PASSWORD_HASH_FAILED",
		"password hashing failed",
		"",
	)

	// Internal
	ErrUserCreationFailed = NewBaseError(
		KindInternal,
		"USER_CREATION_FAILED",
		"failed to create user",
		"",
	)

	ErrProductWriteFailed = NewBaseError(
		KindInternal,
		"PRODUCT_WRITE_FAILED",
		"failed to save product",
		"",
	)

	ErrExportFailed = NewBaseError(
		KindInternal,
		"EXPORT_FAILED",
		"failed to export products",
		"",
	)

	ErrInternalError = NewBaseError(
		KindInternal,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the failure class
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// KindOf reports the Kind of the first AppError in err's chain.
// Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind()
	}

	return KindInternal
}

// MessageOf returns the user-facing message for err without wrap context.
func MessageOf(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Message()
	}

	return ErrInternalError.Message()
}
