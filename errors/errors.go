package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the application error type carried across layers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// stamped records when the error was created
func stamped(e AppError) AppError {
	e.Timestamp = time.Now()
	return e
}

// Error implements the error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General errors

func ErrInternal(err error) AppError {
	return stamped(AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	})
}

func ErrInvalidArgument(message string) AppError {
	return stamped(AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	})
}

func ErrNotFound(resource string) AppError {
	return stamped(AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	})
}

func ErrUnauthenticated() AppError {
	return stamped(AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	})
}

func ErrInvalidToken() AppError {
	return stamped(AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	})
}

func ErrTokenExpired() AppError {
	return stamped(AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	})
}

func ErrInvalidPayload() AppError {
	return stamped(AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	})
}

// Pipeline errors

// ErrInvalidPipelineInput reports structurally invalid explicit input
// handed to a pipeline entry point, naming the stage and field.
func ErrInvalidPipelineInput(stage, field, message string) AppError {
	return stamped(AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_PIPELINE_INVALID_INPUT,
		Message:  message,
	}).WithDetail("stage", stage).WithDetail("field", field)
}

func ErrDossierGenerationFailed(account string, err error) AppError {
	return stamped(AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DOSSIER_GENERATION_FAILED,
		Message:  "Failed to generate dossier",
	}).WithDetail("account", account)
}

func ErrDossierNotFound(account string) AppError {
	return stamped(AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_DOSSIER_NOT_FOUND,
		Message:  "No dossier found for account",
	}).WithDetail("account", account)
}

func ErrSourceFetchFailed(source string, err error) AppError {
	return stamped(AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_SOURCE_FETCH_FAILED,
		Message:  fmt.Sprintf("Source fetch failed: %s", source),
	})
}

// Integration errors

func ErrStorageFailed(operation string, err error) AppError {
	return stamped(AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	})
}

func ErrCacheFailed(operation string, err error) AppError {
	return stamped(AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	})
}

// Database errors

func ErrDBConnectionFailed(err error) AppError {
	return stamped(AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_CONNECTION_FAILED,
		Message:  "Database connection failed",
	})
}

func ErrDBQueryFailed(query string, err error) AppError {
	return stamped(AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}).WithDetail("query", query)
}
