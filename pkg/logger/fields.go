package logger

// Standard field names for structured logging
const (
	// Component fields
	FieldComponent = "component"
	FieldOperation = "operation"

	// Launch fields
	FieldLaunchID   = "launch_id"
	FieldSurface    = "surface"
	FieldEntryPoint = "entry_point"
	FieldBinary     = "binary"
	FieldLinesRead  = "lines_read"
	FieldState      = "state"

	// Error fields
	FieldError = "error"

	// Process fields
	FieldPort     = "port"
	FieldPID      = "pid"
	FieldExitCode = "exit_code"
)

// WithComponent adds component information to the logger
func WithComponent(logger Logger, component string) Logger {
	return logger.WithField(FieldComponent, component)
}

// WithOperation adds operation information to the logger
func WithOperation(logger Logger, operation string) Logger {
	return logger.WithField(FieldOperation, operation)
}

// WithLaunchID tags every entry of a single server launch
func WithLaunchID(logger Logger, launchID string) Logger {
	return logger.WithField(FieldLaunchID, launchID)
}

// WithError adds error information to the logger
func WithError(logger Logger, err error) Logger {
	if err == nil {
		return logger
	}
	return logger.WithField(FieldError, err.Error())
}
