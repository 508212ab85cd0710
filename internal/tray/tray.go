package tray

import (
	"codeberg.org/mutker/powertray/internal/errors"
	"codeberg.org/mutker/powertray/internal/logger"
)

// Backend names accepted by New
const (
	BackendAuto     = "auto"
	BackendSystray  = "systray"
	BackendHeadless = "headless"
)

// New returns the named toolkit; "auto" asks Detect
func New(backend string, log logger.Logger) (Toolkit, error) {
	if backend == BackendAuto || backend == "" {
		backend = Detect()
		log.Debug().Str("backend", backend).Msg("Detected tray backend")
	}

	switch backend {
	case BackendSystray:
		return newSystrayToolkit(log), nil
	case BackendHeadless:
		return newHeadlessToolkit(log), nil
	default:
		return nil, errors.New().WithData(ErrUnknownBackend, backend)
	}
}
