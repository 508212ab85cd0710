package power

import (
	"fmt"

	"codeberg.org/mutker/powertray/internal/errors"
	"github.com/godbus/dbus/v5"
)

const (
	upowerService   = "org.freedesktop.UPower"
	upowerPath      = dbus.ObjectPath("/org/freedesktop/UPower")
	upowerEnumerate = upowerService + ".EnumerateDevices"
	deviceInterface = upowerService + ".Device"

	// UPower device type for batteries
	deviceTypeBattery = uint32(2)
)

// deviceBus is the part of the UPower D-Bus API the enumerator needs
type deviceBus interface {
	Devices() ([]dbus.ObjectPath, error)
	Property(device dbus.ObjectPath, name string) (dbus.Variant, error)
	Close() error
}

type systemBus struct {
	conn *dbus.Conn
}

func (b *systemBus) Devices() ([]dbus.ObjectPath, error) {
	var paths []dbus.ObjectPath
	err := b.conn.Object(upowerService, upowerPath).Call(upowerEnumerate, 0).Store(&paths)

	return paths, err
}

func (b *systemBus) Property(device dbus.ObjectPath, name string) (dbus.Variant, error) {
	return b.conn.Object(upowerService, device).GetProperty(deviceInterface + "." + name)
}

func (b *systemBus) Close() error {
	return b.conn.Close()
}

// upowerEnumerator lists system batteries known to the UPower daemon
type upowerEnumerator struct {
	bus deviceBus
}

type upowerSource struct {
	bus    deviceBus
	device dbus.ObjectPath
}

func newUPowerEnumerator() (*upowerEnumerator, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}

	bus := &systemBus{conn: conn}
	if _, err := bus.Devices(); err != nil {
		conn.Close()
		return nil, err
	}

	return &upowerEnumerator{bus: bus}, nil
}

func (e *upowerEnumerator) Enumerate() ([]Source, error) {
	devices, err := e.bus.Devices()
	if err != nil {
		return nil, err
	}

	var sources []Source
	for _, device := range devices {
		isBattery, err := e.isSystemBattery(device)
		if err != nil {
			return nil, err
		}
		if isBattery {
			sources = append(sources, &upowerSource{bus: e.bus, device: device})
		}
	}

	return sources, nil
}

// isSystemBattery skips peripherals such as mice and UPS units
func (e *upowerEnumerator) isSystemBattery(device dbus.ObjectPath) (bool, error) {
	kind, err := e.bus.Property(device, "Type")
	if err != nil {
		return false, err
	}
	t, ok := kind.Value().(uint32)
	if !ok || t != deviceTypeBattery {
		return false, nil
	}

	supply, err := e.bus.Property(device, "PowerSupply")
	if err != nil {
		return false, err
	}
	powerSupply, ok := supply.Value().(bool)

	return ok && powerSupply, nil
}

func (e *upowerEnumerator) Close() error {
	return e.bus.Close()
}

func (s *upowerSource) Power() (float64, error) {
	errFactory := errors.New()

	rate, err := s.bus.Property(s.device, "EnergyRate")
	if err != nil {
		return 0, errFactory.Wrap(ErrSourceFailed, err)
	}

	watts, ok := rate.Value().(float64)
	if !ok {
		return 0, errFactory.WithData(ErrSourceFailed, fmt.Sprintf("unexpected EnergyRate type %s", rate.Signature()))
	}

	return watts, nil
}
