//go:build !linux

package tray

// Detect always uses the native tray outside Linux
func Detect() string {
	return BackendSystray
}
