package errors

// ErrorCode identifies a stable machine-readable error category
type ErrorCode string

const (
	ErrorCode_INTERNAL                   ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT           ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND                  ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS             ErrorCode = "ALREADY_EXISTS"
	ErrorCode_PERMISSION_DENIED          ErrorCode = "PERMISSION_DENIED"
	ErrorCode_UNAUTHENTICATED            ErrorCode = "UNAUTHENTICATED"
	ErrorCode_AUTH_INVALID_TOKEN         ErrorCode = "AUTH_INVALID_TOKEN"
	ErrorCode_AUTH_TOKEN_EXPIRED         ErrorCode = "AUTH_TOKEN_EXPIRED"
	ErrorCode_PIPELINE_INVALID_INPUT     ErrorCode = "PIPELINE_INVALID_INPUT"
	ErrorCode_DOSSIER_GENERATION_FAILED  ErrorCode = "DOSSIER_GENERATION_FAILED"
	ErrorCode_DOSSIER_NOT_FOUND          ErrorCode = "DOSSIER_NOT_FOUND"
	ErrorCode_SOURCE_FETCH_FAILED        ErrorCode = "SOURCE_FETCH_FAILED"
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = "INTEGRATION_CACHE_FAILED"
	ErrorCode_DB_CONNECTION_FAILED       ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_QUERY_FAILED            ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_INVALID_PAYLOAD            ErrorCode = "INVALID_PAYLOAD"
)

// String returns the code as a plain string
func (c ErrorCode) String() string {
	return string(c)
}
