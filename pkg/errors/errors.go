package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Field names for structured logging
const (
	FieldError      = "error"
	FieldErrorCode  = "error_code"
	FieldStackTrace = "stack_trace"
)

// Standard error codes for the launcher
const (
	// ErrorCodeUnknown is used when the error type is unknown
	ErrorCodeUnknown = "ERR_UNKNOWN"
	// ErrorCodeInvalidInput is used when the configuration or input is invalid
	ErrorCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrorCodeResourceDir is used when the bundled resource directory cannot be found
	ErrorCodeResourceDir = "ERR_RESOURCE_DIR"
	// ErrorCodeSpawnFailed is used when the server process cannot be started
	ErrorCodeSpawnFailed = "ERR_SPAWN_FAILED"
	// ErrorCodeStdoutUnavailable is used when the server's stdout cannot be captured
	ErrorCodeStdoutUnavailable = "ERR_STDOUT_UNAVAILABLE"
	// ErrorCodeNotifyFailed is used when the host shell rejects the ready notification
	ErrorCodeNotifyFailed = "ERR_NOTIFY_FAILED"
	// ErrorCodeShell is used for host shell failures
	ErrorCodeShell = "ERR_SHELL"
	// ErrorCodeInternalError is used for internal errors
	ErrorCodeInternalError = "ERR_INTERNAL"
)

// ContextualError is an error with additional context
type ContextualError struct {
	// Original is the original error
	Original error
	// Message is the contextual message
	Message string
	// Code is the error code
	Code string
	// Fields contains additional fields for logging
	Fields map[string]interface{}
	// Stack contains the stack trace
	Stack string
}

// Error returns the error message
func (e *ContextualError) Error() string {
	if e.Original != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Original)
	}
	return e.Message
}

// Unwrap returns the original error
func (e *ContextualError) Unwrap() error {
	return e.Original
}

// ToFields converts the error to a map of logger fields
func (e *ContextualError) ToFields() map[string]interface{} {
	fields := make(map[string]interface{})

	fields[FieldError] = e.Error()

	if e.Code != "" {
		fields[FieldErrorCode] = e.Code
	}

	if e.Stack != "" {
		fields[FieldStackTrace] = e.Stack
	}

	for k, v := range e.Fields {
		fields[k] = v
	}

	return fields
}

// WrapWithCode wraps an error with a message and error code
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}

	var contextualErr *ContextualError
	if errors.As(err, &contextualErr) {
		return &ContextualError{
			Original: contextualErr.Original,
			Message:  fmt.Sprintf("%s: %s", message, contextualErr.Message),
			Code:     code,
			Fields:   contextualErr.Fields,
			Stack:    contextualErr.Stack,
		}
	}

	return &ContextualError{
		Original: err,
		Message:  message,
		Code:     code,
		Fields:   make(map[string]interface{}),
		Stack:    captureStack(2), // Skip this function and the caller
	}
}

// WrapWithFields wraps an error with a message, an error code and additional fields
func WrapWithFields(err error, code string, fields map[string]interface{}, message string) error {
	if err == nil {
		return nil
	}

	newFields := make(map[string]interface{})

	var contextualErr *ContextualError
	if errors.As(err, &contextualErr) {
		for k, v := range contextualErr.Fields {
			newFields[k] = v
		}
		for k, v := range fields {
			newFields[k] = v
		}

		return &ContextualError{
			Original: contextualErr.Original,
			Message:  fmt.Sprintf("%s: %s", message, contextualErr.Message),
			Code:     code,
			Fields:   newFields,
			Stack:    contextualErr.Stack,
		}
	}

	for k, v := range fields {
		newFields[k] = v
	}

	return &ContextualError{
		Original: err,
		Message:  message,
		Code:     code,
		Fields:   newFields,
		Stack:    captureStack(2), // Skip this function and the caller
	}
}

// NewWithCode creates a new error with a message and error code
func NewWithCode(code, message string) error {
	return &ContextualError{
		Message: message,
		Code:    code,
		Fields:  make(map[string]interface{}),
		Stack:   captureStack(2), // Skip this function and the caller
	}
}

// GetCode returns the error code from an error
func GetCode(err error) string {
	if err == nil {
		return ""
	}

	var contextualErr *ContextualError
	if errors.As(err, &contextualErr) {
		return contextualErr.Code
	}

	return ErrorCodeUnknown
}

// GetFields returns the fields from an error
func GetFields(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var contextualErr *ContextualError
	if errors.As(err, &contextualErr) {
		return contextualErr.ToFields()
	}

	// For regular errors, just return the error message
	return map[string]interface{}{
		FieldError: err.Error(),
	}
}

// captureStack captures the current stack trace
func captureStack(skip int) string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var builder strings.Builder
	for {
		frame, more := frames.Next()
		if !more {
			break
		}

		// Skip runtime and testing packages
		if strings.Contains(frame.Function, "runtime.") || strings.Contains(frame.Function, "testing.") {
			continue
		}

		fmt.Fprintf(&builder, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)

		if builder.Len() > 4096 {
			fmt.Fprintf(&builder, "...\n")
			break
		}
	}

	return builder.String()
}
