// Package shell is the desktop host around the launcher: it owns the window,
// shows the splash page and tells the application which surface came up.
package shell

// Surface identifies a UI surface of the host shell
type Surface int

const (
	// SurfaceUnknown is any identifier the shell does not know
	SurfaceUnknown Surface = iota
	// SurfaceSplash is the splash screen shown while the server starts
	SurfaceSplash
	// SurfaceMain is the main application surface
	SurfaceMain
)

// Surface identifiers as reported by the host
const (
	SplashScreenID = "splashscreen"
	MainID         = "main"
)

// ParseSurface maps a surface identifier to a Surface
func ParseSurface(id string) Surface {
	switch id {
	case SplashScreenID:
		return SurfaceSplash
	case MainID:
		return SurfaceMain
	default:
		return SurfaceUnknown
	}
}

// String returns the surface identifier
func (s Surface) String() string {
	switch s {
	case SurfaceSplash:
		return SplashScreenID
	case SurfaceMain:
		return MainID
	default:
		return "unknown"
	}
}

// Handle is what the application gets to act on the shell. CloseSplash may
// be called from any goroutine.
type Handle interface {
	CloseSplash() error
}

// SetupFunc is called once for every surface the shell brings up
type SetupFunc func(h Handle, s Surface)
