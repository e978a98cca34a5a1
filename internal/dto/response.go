package dto

// Stable machine-readable error codes consumed by clients.
const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeAuthTokenRequired      = "AUTH_TOKEN_REQUIRED"
	CodeAuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	CodeAuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	CodeInsufficientPrivileges = "AUTH_INSUFFICIENT_PRIVILEGES"
	CodeNotFound               = "NOT_FOUND"
	CodeDuplicateUsername      = "DUPLICATE_USERNAME"
	CodeInternalError          = "INTERNAL_ERROR"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(code, message string) Envelope {
	return Envelope{Success: false, Error: message, Code: code, Message: message}
}
