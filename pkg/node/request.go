package node

import (
	"fmt"
	"os"
	"path/filepath"
)

// LaunchRequest describes the server process to start. It is built once at
// startup and never modified.
type LaunchRequest struct {
	// EntryPoint is the absolute path of the server script
	EntryPoint string
	// Port is exported to the server as PORT
	Port int
}

// NewLaunchRequest resolves entry against the resource directory
func NewLaunchRequest(resourceDir, entry string, port int) LaunchRequest {
	return LaunchRequest{
		EntryPoint: filepath.Join(resourceDir, filepath.FromSlash(entry)),
		Port:       port,
	}
}

// Environ returns the parent environment with PORT set for the server
func (r LaunchRequest) Environ() []string {
	return append(os.Environ(), fmt.Sprintf("PORT=%d", r.Port))
}
