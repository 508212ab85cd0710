package sampler

import (
	"strconv"

	"codeberg.org/mutker/powertray/internal/power"
)

const (
	// NoBatteryText is shown on machines without a battery
	NoBatteryText = "No battery found"

	readingPrefix = "Battery: "
	readingSuffix = " W"
)

// Tooltip maps a sample to its tooltip text. Failed queries have no
// text: the previous tooltip stays in place.
func Tooltip(s power.Sample) (string, bool) {
	switch s.Kind {
	case power.KindReading:
		return readingPrefix + strconv.FormatFloat(s.Watts, 'f', -1, 64) + readingSuffix, true
	case power.KindAbsent:
		return NoBatteryText, true
	default:
		return "", false
	}
}
