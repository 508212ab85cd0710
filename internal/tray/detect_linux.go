//go:build linux

package tray

import "os"

// Detect picks the systray backend when a graphical session is present
func Detect() string {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return BackendHeadless
	}

	return BackendSystray
}
