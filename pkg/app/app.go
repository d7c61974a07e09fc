// Package app ties the host shell surfaces to the server launcher.
package app

import (
	"github.com/google/uuid"

	"github.com/guijs/guijs-desktop/pkg/config"
	pkgerrors "github.com/guijs/guijs-desktop/pkg/errors"
	"github.com/guijs/guijs-desktop/pkg/logger"
	"github.com/guijs/guijs-desktop/pkg/node"
	"github.com/guijs/guijs-desktop/pkg/platform"
	"github.com/guijs/guijs-desktop/pkg/shell"
)

// Option configures an App
type Option func(*App)

// WithFatalHandler replaces the handler called when bootstrapping fails.
// The default logs the error at fatal level, which exits the process.
func WithFatalHandler(onFatal func(error)) Option {
	return func(a *App) {
		a.onFatal = onFatal
	}
}

// WithResourceDir replaces the resource directory lookup
func WithResourceDir(lookup func(override string) (string, error)) Option {
	return func(a *App) {
		a.resourceDir = lookup
	}
}

// App reacts to the shell's surfaces. The splash surface starts the server.
type App struct {
	cfg         *config.Config
	launcher    *node.Launcher
	logger      logger.Logger
	onFatal     func(error)
	resourceDir func(override string) (string, error)
}

// New creates an App
func New(cfg *config.Config, launcher *node.Launcher, log logger.Logger, opts ...Option) *App {
	a := &App{
		cfg:         cfg,
		launcher:    launcher,
		logger:      logger.WithComponent(log, "app"),
		resourceDir: platform.ResourceDir,
	}
	a.onFatal = func(err error) {
		a.logger.WithFields(pkgerrors.GetFields(err)).Fatal("Failed to bootstrap server")
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup is the shell's per-surface hook
func (a *App) Setup(h shell.Handle, s shell.Surface) {
	surfaceLogger := a.logger.WithField(logger.FieldSurface, s.String())

	switch s {
	case shell.SurfaceSplash:
		launchLogger := logger.WithLaunchID(surfaceLogger, uuid.NewString())
		launchLogger.Info("Splash screen shown, starting server")
		go a.bootstrap(h, launchLogger)
	case shell.SurfaceMain:
		surfaceLogger.Info("Main surface shown")
	default:
		surfaceLogger.Warn("Ignoring unknown surface")
	}
}

func (a *App) bootstrap(h shell.Handle, log logger.Logger) {
	if err := a.launch(h, log); err != nil {
		a.onFatal(err)
	}
}

func (a *App) launch(h shell.Handle, log logger.Logger) error {
	dir, err := a.resourceDir(a.cfg.ResourceDir)
	if err != nil {
		return pkgerrors.WrapWithCode(err, pkgerrors.ErrorCodeResourceDir, "failed to get resource dir")
	}

	req := node.NewLaunchRequest(dir, a.cfg.ServerEntry, a.cfg.ServerPort)
	log.WithFields(map[string]interface{}{
		logger.FieldEntryPoint: req.EntryPoint,
		logger.FieldPort:       req.Port,
	}).Debug("Launching server")

	return a.launcher.Run(req, h)
}
