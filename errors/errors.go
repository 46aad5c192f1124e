package apperrors // import "github.com/bookgrove/bookgrove/errors"

import (
	"errors"
	"fmt"
)

// AppError carries a business error code alongside a user-facing message.
// The wrapped Err is internal only and never serialized to clients.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap turns a low-level error (database, network) into an AppError,
// keeping the original for logs only.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes.
// 4xxxx: caller errors (bad input, business rule violations)
// 5xxxx: server side errors (database, dependencies)
const (
	ErrCodeInternal    = 50000
	ErrCodeDatabase    = 50001
	ErrCodeUnavailable = 50002

	ErrCodeUnauthenticated = 40100
	ErrCodeForbidden       = 40104

	ErrCodeNotFound = 40400

	ErrCodeBusinessError     = 40000
	ErrCodeDuplicateEntry    = 40009
	ErrCodeOperationInFlight = 40010

	ErrCodeInvalidParams = 40900
)

var (
	ErrInternal         = New(ErrCodeInternal, "internal error")
	ErrStoreUnavailable = New(ErrCodeUnavailable, "store is unavailable, try again")

	// ErrAuthenticationRequired means there is no signed-in identity; the
	// caller is expected to redirect to sign-in.
	ErrAuthenticationRequired = New(ErrCodeUnauthenticated, "authentication required")
	// ErrAuthorizationDenied means the caller does not own the resource.
	ErrAuthorizationDenied = New(ErrCodeForbidden, "not the owner of this resource")

	ErrBookNotFound   = New(ErrCodeNotFound, "book not found")
	ErrReviewNotFound = New(ErrCodeNotFound, "review not found")
	ErrUserNotFound   = New(ErrCodeNotFound, "user not found")

	ErrReviewExists = New(ErrCodeDuplicateEntry, "you already reviewed this book")
	// ErrSubmissionInFlight is the single-flight gate: one mutating call
	// at a time per session.
	ErrSubmissionInFlight = New(ErrCodeOperationInFlight, "another submission is in flight")
	ErrUsernameExists     = New(ErrCodeDuplicateEntry, "username already exists")
)

// GetAppError extracts the AppError, wrapping anything else as internal.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, "internal error")
}

// HasCode reports whether err carries the given business code.
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsValidation reports whether err is a field-level validation failure,
// which never reaches the store.
func IsValidation(err error) bool {
	return HasCode(err, ErrCodeInvalidParams)
}

func IsNotFound(err error) bool {
	return HasCode(err, ErrCodeNotFound)
}
