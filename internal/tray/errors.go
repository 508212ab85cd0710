package tray

import "codeberg.org/mutker/powertray/internal/errors"

const (
	ErrUnknownBackend = errors.ErrorCode("tray_unknown_backend")
	ErrBuildFailed    = errors.ErrorCode("tray_build_failed")
	ErrNotActive      = errors.ErrorCode("tray_not_active")
)
