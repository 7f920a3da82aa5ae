package cerror

import (
	"go.uber.org/zap/zapcore"
)

// CustomError is the single error type crossing the service boundary.
// Message, Code and Details are client-visible; the Log* fields drive the
// central error middleware. An empty Message means the client only gets a
// generic internal-server-error body.
type CustomError struct {
	HttpStatusCode int
	Code           string
	Message        string
	Details        map[string]string
	LogMessage     string
	LogSeverity    zapcore.Level
	LogFields      []zapcore.Field
}

func (cerr *CustomError) Error() string {
	if cerr.LogMessage != "" {
		return cerr.LogMessage
	}

	return cerr.Message
}

// Is matches copies produced by WithFields against their shared sentinel,
// ignoring the per-call log fields.
func (cerr *CustomError) Is(target error) bool {
	targetError, isCustomError := target.(*CustomError)
	if !isCustomError {
		return false
	}

	return cerr.HttpStatusCode == targetError.HttpStatusCode &&
		cerr.Code == targetError.Code &&
		cerr.Message == targetError.Message &&
		cerr.LogMessage == targetError.LogMessage
}

type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}
