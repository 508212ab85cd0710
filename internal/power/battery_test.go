package power

import (
	"fmt"
	"testing"

	"github.com/distatus/battery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enumeratorReturning(bats []*battery.Battery, err error) *batteryEnumerator {
	return &batteryEnumerator{getAll: func() ([]*battery.Battery, error) {
		return bats, err
	}}
}

func TestBatteryEnumerate(t *testing.T) {
	enum := enumeratorReturning([]*battery.Battery{{ChargeRate: 12500}, {ChargeRate: 900}}, nil)

	sources, err := enum.Enumerate()
	require.NoError(t, err)
	require.Len(t, sources, 2)

	watts, err := sources[0].Power()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, watts, 1e-9, "charge rate is reported in mW")
}

func TestBatteryEnumerateNone(t *testing.T) {
	sources, err := enumeratorReturning(nil, nil).Enumerate()
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestBatteryEnumerateFatal(t *testing.T) {
	_, err := enumeratorReturning(nil, battery.ErrFatal{Err: fmt.Errorf("no power_supply class")}).Enumerate()
	require.Error(t, err)
}

func TestBatteryPartialErrors(t *testing.T) {
	bats := []*battery.Battery{{ChargeRate: 47250}, {ChargeRate: 1000}}
	errs := battery.Errors{
		battery.ErrPartial{Design: fmt.Errorf("design unknown")},
		battery.ErrPartial{ChargeRate: fmt.Errorf("rate unknown")},
	}

	sources, err := enumeratorReturning(bats, errs).Enumerate()
	require.NoError(t, err)
	require.Len(t, sources, 2)

	watts, err := sources[0].Power()
	require.NoError(t, err, "errors unrelated to the charge rate are tolerated")
	assert.InDelta(t, 47.25, watts, 1e-9)

	_, err = sources[1].Power()
	require.Error(t, err)
}

func TestBatteryPerBatteryFailure(t *testing.T) {
	errs := battery.Errors{fmt.Errorf("read failed")}

	sources, err := enumeratorReturning([]*battery.Battery{nil}, errs).Enumerate()
	require.NoError(t, err)
	require.Len(t, sources, 1)

	_, err = sources[0].Power()
	require.Error(t, err)
}
