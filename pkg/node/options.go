package node

import (
	"io"
)

// LauncherOption is a function that configures a Launcher
type LauncherOption func(*Launcher)

// WithNodeBinary sets the runtime used to start the server
func WithNodeBinary(binary string) LauncherOption {
	return func(l *Launcher) {
		l.nodeBinary = binary
	}
}

// WithSink sets the diagnostic sink for server output
func WithSink(sink Sink) LauncherOption {
	return func(l *Launcher) {
		l.sink = sink
	}
}

// WithStdio overrides the stdin and stderr handed to the server.
// Both default to the launcher's own.
func WithStdio(stdin io.Reader, stderr io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.stdin = stdin
		l.stderr = stderr
	}
}
