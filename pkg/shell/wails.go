package shell

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	pkgerrors "github.com/guijs/guijs-desktop/pkg/errors"
	"github.com/guijs/guijs-desktop/pkg/logger"
)

//go:embed all:assets
var splashAssets embed.FS

var (
	// ErrShellNotStarted is returned when the window does not exist yet
	ErrShellNotStarted = errors.New("shell has not started")
	// ErrShellClosed is returned once the window has been closed
	ErrShellClosed = errors.New("shell has been closed")
	// ErrSplashClosed is returned when the splash screen was already dismissed
	ErrSplashClosed = errors.New("splash screen already closed")
)

// Options configures the Wails window
type Options struct {
	Title  string
	Width  int
	Height int
	// MainURL is loaded in place of the splash page by CloseSplash
	MainURL string
}

// WailsShell hosts the application in a Wails window. The window starts on
// the embedded splash page and switches to MainURL on CloseSplash. The
// splash surface is reported once its page has loaded, and navigation never
// runs before that point.
type WailsShell struct {
	opts   Options
	setup  SetupFunc
	logger logger.Logger

	// navigate is replaced in tests
	navigate func(ctx context.Context, url string)

	mu           sync.Mutex
	ctx          context.Context
	splashLoaded bool
	closed       bool
	splashClosed bool
	// pendingMain is set when CloseSplash ran before the splash page loaded
	pendingMain bool
}

// NewWailsShell creates a shell that reports its surfaces to setup
func NewWailsShell(opts Options, setup SetupFunc, log logger.Logger) *WailsShell {
	return &WailsShell{
		opts:     opts,
		setup:    setup,
		logger:   logger.WithComponent(log, "shell"),
		navigate: navigateWindow,
	}
}

// Run opens the window and blocks until it is closed
func (w *WailsShell) Run() error {
	assets, err := fs.Sub(splashAssets, "assets")
	if err != nil {
		return pkgerrors.WrapWithCode(err, pkgerrors.ErrorCodeInternalError, "failed to load splash assets")
	}

	err = wails.Run(&options.App{
		Title:  w.opts.Title,
		Width:  w.opts.Width,
		Height: w.opts.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  w.startup,
		OnDomReady: w.domReady,
		OnShutdown: w.shutdown,
	})
	if err != nil {
		return pkgerrors.WrapWithCode(err, pkgerrors.ErrorCodeShell, "host shell failed")
	}
	return nil
}

func (w *WailsShell) startup(ctx context.Context) {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()
}

// domReady also fires after the window moves to MainURL; only the first
// call belongs to the splash page.
func (w *WailsShell) domReady(ctx context.Context) {
	w.mu.Lock()
	if w.splashLoaded {
		w.mu.Unlock()
		return
	}
	w.splashLoaded = true
	pending := w.pendingMain
	w.pendingMain = false
	w.mu.Unlock()

	w.logger.WithField(logger.FieldSurface, SurfaceSplash.String()).Debug("Surface ready")
	w.setup(w, SurfaceSplash)

	if pending {
		w.showMain(ctx)
	}
}

func (w *WailsShell) shutdown(ctx context.Context) {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.logger.Debug("Shell closed")
}

// CloseSplash replaces the splash page with the main surface. Called before
// the splash page has loaded, it succeeds and the switch happens on load.
func (w *WailsShell) CloseSplash() error {
	w.mu.Lock()
	switch {
	case w.ctx == nil:
		w.mu.Unlock()
		return ErrShellNotStarted
	case w.closed:
		w.mu.Unlock()
		return ErrShellClosed
	case w.splashClosed:
		w.mu.Unlock()
		return ErrSplashClosed
	}
	w.splashClosed = true
	if !w.splashLoaded {
		w.pendingMain = true
		w.mu.Unlock()
		w.logger.Debug("Splash page still loading, deferring main surface")
		return nil
	}
	ctx := w.ctx
	w.mu.Unlock()

	w.showMain(ctx)
	return nil
}

func (w *WailsShell) showMain(ctx context.Context) {
	w.navigate(ctx, w.opts.MainURL)
	w.logger.WithFields(map[string]interface{}{
		logger.FieldSurface: SurfaceMain.String(),
		"url":               w.opts.MainURL,
	}).Info("Splash screen closed")

	w.setup(w, SurfaceMain)
}

func navigateWindow(ctx context.Context, url string) {
	target, _ := json.Marshal(url)
	wailsRuntime.WindowExecJS(ctx, fmt.Sprintf("window.location.replace(%s)", target))
	wailsRuntime.WindowShow(ctx)
}
