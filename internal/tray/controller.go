package tray

import (
	"codeberg.org/mutker/powertray/internal/errors"
	"codeberg.org/mutker/powertray/internal/logger"
)

// State is the lifecycle of the tray icon. It only moves forward.
type State int

const (
	Uninitialized State = iota
	Built
	Active
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Built:
		return "built"
	case Active:
		return "active"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Controller owns the tray icon: built once, then updated many times.
// It is not safe for concurrent use; only the UI loop touches it.
type Controller struct {
	toolkit Toolkit
	spec    Spec
	widget  Widget
	state   State
	tooltip string
	logger  logger.Logger
}

func NewController(toolkit Toolkit, spec Spec, log logger.Logger) *Controller {
	return &Controller{
		toolkit: toolkit,
		spec:    spec,
		logger:  log,
	}
}

// Init builds the tray icon on the first call and activates it. Later
// calls, including repeated initialization events, do nothing.
func (c *Controller) Init() error {
	if c.state != Uninitialized {
		c.logger.Debug().Stringer("state", c.state).Msg("Tray already initialized")
		return nil
	}

	widget, err := c.toolkit.Build(c.spec)
	if err != nil {
		return errors.New().Wrap(ErrBuildFailed, err)
	}

	c.widget = widget
	c.tooltip = c.spec.Tooltip
	c.transition(Built)
	c.transition(Active)

	return nil
}

// Apply replaces the tooltip text. It is ignored unless the icon is
// active.
func (c *Controller) Apply(text string) bool {
	if c.state != Active {
		c.logger.Debug().Stringer("state", c.state).Str("tooltip", text).Msg("Dropping tooltip for inactive tray")
		return false
	}

	c.widget.SetTooltip(text)
	c.tooltip = text

	return true
}

// Destroy marks the icon as gone at shutdown. The toolkit removes the
// native icon when its loop exits.
func (c *Controller) Destroy() {
	if c.state == Destroyed {
		return
	}
	c.transition(Destroyed)
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	return c.state
}

// Tooltip returns the text most recently applied to the widget
func (c *Controller) Tooltip() string {
	return c.tooltip
}

func (c *Controller) transition(to State) {
	c.logger.Debug().
		Stringer("from", c.state).
		Stringer("to", to).
		Str("toolkit", c.toolkit.Name()).
		Msg("Tray state change")
	c.state = to
}
