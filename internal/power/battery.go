package power

import (
	"codeberg.org/mutker/powertray/internal/errors"
	"github.com/distatus/battery"
)

const milliWattsToWatts = 1000

// batteryEnumerator reads batteries through the platform's native
// interface (sysfs, IOKit, WMI, ...) via distatus/battery.
type batteryEnumerator struct {
	getAll func() ([]*battery.Battery, error)
}

type batterySource struct {
	bat *battery.Battery
	err error
}

func newBatteryEnumerator() *batteryEnumerator {
	return &batteryEnumerator{getAll: battery.GetAll}
}

func (e *batteryEnumerator) Enumerate() ([]Source, error) {
	bats, err := e.getAll()

	var perBattery battery.Errors
	if err != nil && !errors.As(err, &perBattery) {
		return nil, err
	}

	sources := make([]Source, 0, len(bats))
	for i, bat := range bats {
		src := &batterySource{bat: bat}
		if i < len(perBattery) {
			src.err = perBattery[i]
		}
		sources = append(sources, src)
	}

	return sources, nil
}

// Power tolerates partial errors as long as the charge rate was read
func (s *batterySource) Power() (float64, error) {
	errFactory := errors.New()

	if s.err != nil {
		var partial battery.ErrPartial
		if !errors.As(s.err, &partial) || partial.ChargeRate != nil {
			return 0, errFactory.Wrap(ErrSourceFailed, s.err)
		}
	}

	if s.bat == nil {
		return 0, errFactory.WithMessage(ErrSourceFailed, "battery reported without data")
	}

	return s.bat.ChargeRate / milliWattsToWatts, nil
}
