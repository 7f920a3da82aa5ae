package cerror

import (
	"net/http"

	"go.uber.org/zap/zapcore"
)

func NewError(httpStatusCode int, logMessage string, logFields ...zapcore.Field) *CustomError {
	return &CustomError{
		HttpStatusCode: httpStatusCode,
		LogMessage:     logMessage,
		LogSeverity:    zapcore.ErrorLevel,
		LogFields:      logFields,
	}
}

func (cerr *CustomError) SetSeverity(severity zapcore.Level) *CustomError {
	cerr.LogSeverity = severity
	return cerr
}

// WithFields returns a copy carrying extra log fields, so the shared error
// values in constants.go are never mutated.
func (cerr *CustomError) WithFields(logFields ...zapcore.Field) *CustomError {
	copied := *cerr
	copied.LogFields = append(copied.LogFields[:len(copied.LogFields):len(copied.LogFields)], logFields...)
	return &copied
}

// NewValidationError reports request validation failures with a
// field-to-message map in the error details.
func NewValidationError(details map[string]string) *CustomError {
	return &CustomError{
		HttpStatusCode: http.StatusBadRequest,
		Code:           CodeValidationFailed,
		Message:        "Validation failed",
		Details:        details,
		LogMessage:     "malformed request body or query parameter",
		LogSeverity:    zapcore.WarnLevel,
	}
}
