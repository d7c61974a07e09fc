package logger

// Logger is the structured logging facade shared by every package.
// Implementations must be safe for concurrent use: the server output is
// logged from its own goroutine while the shell logs from the UI thread.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	// Fatal logs at level Fatal then exits the process with status 1
	Fatal(args ...interface{})

	// WithField returns a logger carrying an extra field
	WithField(key string, value interface{}) Logger
	// WithFields returns a logger carrying extra fields
	WithFields(fields map[string]interface{}) Logger
}
