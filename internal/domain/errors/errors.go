package errors

import (
	"net/http"

	"jobhub/internal/errors"
)

// Kind classifies an application error independently of its transport mapping.
type Kind int

const (
	// KindInternal is an unexpected failure that is not the caller's fault.
	KindInternal Kind = iota
	// KindBadRequest is malformed or policy-violating input.
	KindBadRequest
	// KindUnauthorized is an authentication failure or an authorization denial.
	KindUnauthorized
	// KindNotFound is a reference to an entity that does not exist.
	KindNotFound
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error category
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
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// NewBadRequest creates a 400 error with the given business code and message.
func NewBadRequest(errorCode, message string) *BaseError {
	return NewBaseError(KindBadRequest, http.StatusBadRequest, errorCode, message, "")
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error category
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
// The copy does not match the original with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// Predefined error types
var (
	// Registration and profile errors
	ErrAdminRegistration = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"ADMIN_REGISTRATION_FORBIDDEN",
		"Cannot register as ADMIN",
		"",
	)

	ErrInvalidRole = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"INVALID_ROLE",
		"Role must be one of USER or COMPANY",
		"",
	)

	ErrEmailAlreadyExists = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"EMAIL_ALREADY_EXISTS",
		"Email already exists",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to process password",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid refresh token",
		"",
	)

	ErrRefreshTokenExpired = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"REFRESH_TOKEN_EXPIRED",
		"Refresh token expired",
		"",
	)

	ErrAccessTokenInvalid = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"ACCESS_TOKEN_INVALID",
		"Invalid or expired access token",
		"",
	)

	ErrMissingToken = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"Authorization header must carry a Bearer token",
		"",
	)

	ErrPrincipalNotFound = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"PRINCIPAL_NOT_FOUND",
		"Authenticated user no longer exists",
		"",
	)

	// Authorization errors
	ErrPermissionDenied = NewBaseError(
		KindUnauthorized,
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"You do not have permission to perform this action",
		"",
	)

	ErrCompanyRoleRequired = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"COMPANY_ROLE_REQUIRED",
		"Only users with COMPANY role can create companies",
		"",
	)

	// Application errors
	ErrApplicantRoleRequired = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"USER_ROLE_REQUIRED",
		"Only users with USER role can apply to jobs",
		"",
	)

	ErrSelfApplication = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"SELF_APPLICATION",
		"You cannot apply to your own company's job",
		"",
	)

	ErrAlreadyApplied = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"ALREADY_APPLIED",
		"You have already applied to this job",
		"",
	)

	ErrNoStoredResume = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"NO_STORED_RESUME",
		"No stored resume found. Please upload a resume first.",
		"",
	)

	ErrResumeURLRequired = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"RESUME_URL_REQUIRED",
		"Resume URL is required",
		"",
	)

	// Not found errors
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrCompanyNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"COMPANY_NOT_FOUND",
		"Company not found",
		"",
	)

	ErrJobNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"JOB_NOT_FOUND",
		"Job not found",
		"",
	)

	ErrApplicationNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"APPLICATION_NOT_FOUND",
		"Application not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		KindBadRequest,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrUploadUnavailable = NewBaseError(
		KindInternal,
		http.StatusServiceUnavailable,
		"UPLOAD_UNAVAILABLE",
		"File uploads are not configured",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
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

// Kind returns the error category
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
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
