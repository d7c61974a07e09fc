// Package platform locates the assets bundled next to the desktop binary.
package platform

import (
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/guijs/guijs-desktop/pkg/errors"
)

// executable is swapped in tests
var executable = os.Executable

// ResourceDir returns the directory holding the bundled server assets.
// A non-empty override is used as is. Otherwise the directory is derived
// from the running executable: Contents/Resources inside a macOS app
// bundle, the executable's own directory everywhere else.
func ResourceDir(override string) (string, error) {
	dir := override
	if dir == "" {
		exe, err := executable()
		if err != nil {
			return "", pkgerrors.WrapWithCode(err, pkgerrors.ErrorCodeResourceDir, "failed to locate executable")
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = resourceDirFor(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", pkgerrors.WrapWithCode(err, pkgerrors.ErrorCodeResourceDir, "failed to resolve resource directory")
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", pkgerrors.WrapWithFields(err, pkgerrors.ErrorCodeResourceDir,
			map[string]interface{}{"resource_dir": abs}, "resource directory is not accessible")
	}
	if !info.IsDir() {
		return "", pkgerrors.NewWithCode(pkgerrors.ErrorCodeResourceDir,
			fmt.Sprintf("resource path %s is not a directory", abs))
	}

	return abs, nil
}

func resourceDirFor(exe string) string {
	binDir := filepath.Dir(exe)
	contents := filepath.Dir(binDir)
	if filepath.Base(binDir) == "MacOS" && filepath.Base(contents) == "Contents" {
		return filepath.Join(contents, "Resources")
	}
	return binDir
}
