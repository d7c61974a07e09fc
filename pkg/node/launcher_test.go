package node

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/guijs/guijs-desktop/pkg/errors"
	"github.com/guijs/guijs-desktop/pkg/logger"
)

// recorder is both sink and notifier so the relative order of lines and
// the ready notification can be checked
type recorder struct {
	mu        sync.Mutex
	events    []string
	notifyErr error
}

func (r *recorder) Line(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "line:"+line)
}

func (r *recorder) CloseSplash() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "notify")
	return r.notifyErr
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newTestLauncher(t *testing.T, rec *recorder, opts ...LauncherOption) *Launcher {
	t.Helper()
	base, _ := logrustest.NewNullLogger()
	opts = append([]LauncherOption{WithSink(rec), WithStdio(nil, io.Discard)}, opts...)
	return NewLauncher(logger.NewFromLogrus(base), opts...)
}

func TestConsumeNotifiesAfterFirstLine(t *testing.T) {
	rec := &recorder{}
	l := newTestLauncher(t, rec)

	lines, err := l.consume(strings.NewReader("starting\nlistening on 4000\n"), rec, l.logger)
	require.NoError(t, err)

	assert.Equal(t, 2, lines)
	assert.Equal(t, []string{"line:starting", "notify", "line:listening on 4000"}, rec.Events())
}

func TestConsumeNotifiesOnceForManyLines(t *testing.T) {
	rec := &recorder{}
	l := newTestLauncher(t, rec)

	output := strings.Repeat("tick\n", 50)
	lines, err := l.consume(strings.NewReader(output), rec, l.logger)
	require.NoError(t, err)

	notifications := 0
	for _, event := range rec.Events() {
		if event == "notify" {
			notifications++
		}
	}
	assert.Equal(t, 50, lines)
	assert.Equal(t, 1, notifications)
}

func TestConsumeSilentServerNeverNotifies(t *testing.T) {
	rec := &recorder{}
	l := newTestLauncher(t, rec)

	lines, err := l.consume(strings.NewReader(""), rec, l.logger)
	require.NoError(t, err)

	assert.Zero(t, lines)
	assert.Empty(t, rec.Events())
}

func TestConsumeWhitespaceLineCountsAsReady(t *testing.T) {
	rec := &recorder{}
	l := newTestLauncher(t, rec)

	_, err := l.consume(strings.NewReader("  \t\n"), rec, l.logger)
	require.NoError(t, err)

	assert.Equal(t, []string{"line:  \t", "notify"}, rec.Events())
}

func TestConsumeSkipsUndecodableLines(t *testing.T) {
	rec := &recorder{}
	l := newTestLauncher(t, rec)

	input := string([]byte{0xc3, 0x28}) + "\nok\n"
	lines, err := l.consume(strings.NewReader(input), rec, l.logger)
	require.NoError(t, err)

	assert.Equal(t, 1, lines)
	assert.Equal(t, []string{"line:ok", "notify"}, rec.Events())
}

func TestConsumeStopsWhenNotifyFails(t *testing.T) {
	rec := &recorder{notifyErr: errors.New("splash window already closed")}
	l := newTestLauncher(t, rec)

	lines, err := l.consume(strings.NewReader("starting\nsecond\nthird\n"), rec, l.logger)
	require.Error(t, err)

	assert.Equal(t, 1, lines)
	assert.Equal(t, pkgerrors.ErrorCodeNotifyFailed, pkgerrors.GetCode(err))
	assert.Equal(t, []string{"line:starting", "notify"}, rec.Events())
}

func TestConsumeReadErrorEndsStream(t *testing.T) {
	rec := &recorder{}
	l := newTestLauncher(t, rec)

	lines, err := l.consume(io.MultiReader(strings.NewReader("up\n"), errReader{}), rec, l.logger)
	require.NoError(t, err)

	assert.Equal(t, 1, lines)
	assert.Equal(t, []string{"line:up", "notify"}, rec.Events())
}

func writeServerScript(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "server"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "server", "app.js"), []byte(body), 0644))
	return dir
}

func TestRunSpawnsServerWithPort(t *testing.T) {
	dir := writeServerScript(t, "echo starting\necho \"listening on $PORT\"\n")
	rec := &recorder{}
	l := newTestLauncher(t, rec, WithNodeBinary("sh"))

	err := l.Run(NewLaunchRequest(dir, "server/app.js", 4100), rec)
	require.NoError(t, err)

	assert.Equal(t, []string{"line:starting", "notify", "line:listening on 4100"}, rec.Events())
}

func TestRunServerWithoutOutput(t *testing.T) {
	dir := writeServerScript(t, "exit 0\n")
	rec := &recorder{}
	l := newTestLauncher(t, rec, WithNodeBinary("sh"))

	require.NoError(t, l.Run(NewLaunchRequest(dir, "server/app.js", 4000), rec))
	assert.Empty(t, rec.Events())
}

func TestRunNotifyFailureIsReturned(t *testing.T) {
	dir := writeServerScript(t, "echo starting\necho more\n")
	rec := &recorder{notifyErr: errors.New("closed")}
	l := newTestLauncher(t, rec, WithNodeBinary("sh"))

	err := l.Run(NewLaunchRequest(dir, "server/app.js", 4000), rec)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.ErrorCodeNotifyFailed, pkgerrors.GetCode(err))
	assert.Equal(t, []string{"line:starting", "notify"}, rec.Events())
}

func TestStartMissingRuntime(t *testing.T) {
	rec := &recorder{}
	l := newTestLauncher(t, rec, WithNodeBinary(filepath.Join(t.TempDir(), "no-such-node")))

	err := l.Run(NewLaunchRequest(t.TempDir(), "server/app.js", 4000), rec)
	require.Error(t, err)

	assert.Equal(t, pkgerrors.ErrorCodeSpawnFailed, pkgerrors.GetCode(err))
	assert.Empty(t, rec.Events())

	fields := pkgerrors.GetFields(err)
	assert.Equal(t, 4000, fields[logger.FieldPort])
}

func TestNewLaunchRequest(t *testing.T) {
	req := NewLaunchRequest("/opt/guijs/resources", "server/app.js", 4000)

	assert.Equal(t, filepath.Join("/opt/guijs/resources", "server", "app.js"), req.EntryPoint)
	env := req.Environ()
	assert.Equal(t, "PORT=4000", env[len(env)-1])
	assert.Len(t, env, len(os.Environ())+1)
}

func TestPrefixSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewPrefixSink(&buf, DiagnosticPrefix)

	sink.Line("starting")
	sink.Line("listening on 4000")

	assert.Equal(t, "SERVER: starting\nSERVER: listening on 4000\n", buf.String())
}
