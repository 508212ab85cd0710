package power

import (
	"io"
	"runtime"

	"codeberg.org/mutker/powertray/internal/errors"
	"codeberg.org/mutker/powertray/internal/logger"
)

// Backend names accepted by New
const (
	BackendAuto    = "auto"
	BackendBattery = "battery"
	BackendUPower  = "upower"
)

// Adapter turns the first power source of an Enumerator into Samples.
// It never retries; the caller's cadence is the retry policy.
type Adapter struct {
	enum    Enumerator
	backend string
	logger  logger.Logger
}

// NewAdapter wraps enum. backend is only used for logging.
func NewAdapter(enum Enumerator, backend string, log logger.Logger) *Adapter {
	return &Adapter{
		enum:    enum,
		backend: backend,
		logger:  log,
	}
}

// New opens the named backend. "auto" prefers UPower on Linux when the
// system bus is reachable and falls back to the battery backend.
func New(backend string, log logger.Logger) (*Adapter, error) {
	errFactory := errors.New()

	switch backend {
	case BackendBattery:
		return NewAdapter(newBatteryEnumerator(), BackendBattery, log), nil
	case BackendUPower:
		enum, err := newUPowerEnumerator()
		if err != nil {
			return nil, errFactory.Wrap(ErrBusConnect, err)
		}
		return NewAdapter(enum, BackendUPower, log), nil
	case BackendAuto, "":
		if runtime.GOOS == "linux" {
			enum, err := newUPowerEnumerator()
			if err == nil {
				log.Debug().Str("backend", BackendUPower).Msg("Selected power backend")
				return NewAdapter(enum, BackendUPower, log), nil
			}
			log.Debug().Err(err).Msg("UPower unavailable, using battery backend")
		}
		log.Debug().Str("backend", BackendBattery).Msg("Selected power backend")
		return NewAdapter(newBatteryEnumerator(), BackendBattery, log), nil
	default:
		return nil, errFactory.WithData(ErrUnknownBackend, backend)
	}
}

// Backend returns the name of the selected backend
func (a *Adapter) Backend() string {
	return a.backend
}

// Sample queries the first reported power source
func (a *Adapter) Sample() Sample {
	errFactory := errors.New()

	sources, err := a.enum.Enumerate()
	if err != nil {
		a.logger.Debug().Err(err).Msg("Unable to access battery information")
		return QueryFailed(errFactory.Wrap(ErrEnumerateFailed, err))
	}

	if len(sources) == 0 {
		a.logger.Debug().Msg("Unable to find any batteries")
		return Absent()
	}

	watts, err := sources[0].Power()
	if err != nil {
		a.logger.Debug().Err(err).Msg("Unable to read battery power")
		return QueryFailed(errFactory.Wrap(ErrPowerReadFailed, err))
	}

	return Reading(watts)
}

// Close releases the backend's resources
func (a *Adapter) Close() error {
	if c, ok := a.enum.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
