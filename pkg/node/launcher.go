package node

import (
	"errors"
	"io"
	"os"
	"os/exec"

	pkgerrors "github.com/guijs/guijs-desktop/pkg/errors"
	"github.com/guijs/guijs-desktop/pkg/logger"
)

// Process is a started server together with its captured stdout
type Process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

// Pid returns the OS process id of the server
func (p *Process) Pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Launcher starts the bundled server and turns its first line of output
// into a ready notification
type Launcher struct {
	nodeBinary string
	sink       Sink
	stdin      io.Reader
	stderr     io.Writer
	logger     logger.Logger
}

// NewLauncher creates a launcher. By default it runs "node", prints server
// output to stdout with DiagnosticPrefix and shares its stdin and stderr
// with the server.
func NewLauncher(log logger.Logger, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		nodeBinary: "node",
		sink:       NewPrefixSink(os.Stdout, DiagnosticPrefix),
		stdin:      os.Stdin,
		stderr:     os.Stderr,
		logger:     logger.WithComponent(log, "node"),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Run starts the server and blocks reading its output until the stream ends.
// See Watch for the readiness semantics.
func (l *Launcher) Run(req LaunchRequest, notifier Notifier) error {
	process, err := l.Start(req)
	if err != nil {
		return err
	}
	return l.Watch(process, notifier)
}

// Start spawns the server with PORT set and its stdout piped to the launcher
func (l *Launcher) Start(req LaunchRequest) (*Process, error) {
	fields := map[string]interface{}{
		logger.FieldBinary:     l.nodeBinary,
		logger.FieldEntryPoint: req.EntryPoint,
		logger.FieldPort:       req.Port,
	}
	startLogger := logger.WithOperation(l.logger.WithFields(fields), "start")

	cmd := exec.Command(l.nodeBinary, req.EntryPoint)
	cmd.Env = req.Environ()
	cmd.Stdin = l.stdin
	cmd.Stderr = l.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, pkgerrors.WrapWithFields(err, pkgerrors.ErrorCodeStdoutUnavailable, fields,
			"failed to capture server stdout")
	}

	if err := cmd.Start(); err != nil {
		return nil, pkgerrors.WrapWithFields(err, pkgerrors.ErrorCodeSpawnFailed, fields,
			"failed to start server process")
	}

	process := &Process{cmd: cmd, stdout: stdout}
	startLogger.WithField(logger.FieldPID, process.Pid()).Info("Server process started")

	return process, nil
}

// Watch reads the server output line by line until the stream ends.
// Every decoded line goes to the sink. The first one also notifies the host
// exactly once, after it has reached the sink and before the next line is
// read. Lines that are not valid UTF-8 are skipped. A notification failure
// stops the loop and is returned; a server that never writes never notifies.
func (l *Launcher) Watch(p *Process, notifier Notifier) error {
	watchLogger := logger.WithOperation(l.logger, "watch").WithField(logger.FieldPID, p.Pid())

	lines, err := l.consume(p.stdout, notifier, watchLogger)
	watchLogger = watchLogger.WithField(logger.FieldLinesRead, lines)
	if err != nil {
		return pkgerrors.WrapWithFields(err, pkgerrors.GetCode(err),
			map[string]interface{}{logger.FieldPID: p.Pid()}, "server watch aborted")
	}

	watchLogger.Info("Server output closed")
	go l.reap(p, watchLogger)

	return nil
}

func (l *Launcher) consume(r io.Reader, notifier Notifier, log logger.Logger) (int, error) {
	reader := NewLineReader(r)
	readiness := NewReadiness(notifier)
	lines := 0

	for {
		line, err := reader.Next()
		switch {
		case err == nil:
		case errors.Is(err, ErrUndecodable):
			continue
		case errors.Is(err, io.EOF):
			return lines, nil
		default:
			logger.WithError(log, err).Warn("Reading server output failed")
			return lines, nil
		}

		lines++
		l.sink.Line(line)

		fired, err := readiness.Observe()
		if err != nil {
			return lines, err
		}
		if fired {
			log.WithField(logger.FieldState, readiness.State().String()).Info("Server is ready")
		}
	}
}

// reap collects the exit status once the server has closed its output.
// The launcher never terminates the server itself.
func (l *Launcher) reap(p *Process, log logger.Logger) {
	if err := p.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.WithField(logger.FieldExitCode, exitErr.ExitCode()).Warn("Server process exited with error")
			return
		}
		logger.WithError(log, err).Warn("Failed to wait for server process")
		return
	}
	log.Debug("Server process exited")
}
