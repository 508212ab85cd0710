package power

import "codeberg.org/mutker/powertray/internal/errors"

const (
	// Backend selection errors
	ErrUnknownBackend = errors.ErrorCode("power_unknown_backend")
	ErrBusConnect     = errors.ErrorCode("power_bus_connect_failed")

	// Query errors
	ErrEnumerateFailed = errors.ErrorCode("power_enumerate_failed")
	ErrSourceFailed    = errors.ErrorCode("power_source_failed")
	ErrPowerReadFailed = errors.ErrorCode("power_read_failed")
)
