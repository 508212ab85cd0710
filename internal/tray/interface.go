package tray

// Toolkit is a host windowing/tray backend. Run must be called from the
// main goroutine; Build and the Widget it returns must only be used from
// the goroutine that owns the tray (the UI loop).
type Toolkit interface {
	// Run starts the host event loop and blocks until Quit. ready is
	// invoked on its own goroutine once the host loop is up.
	Run(ready, exit func())
	// Build creates the tray icon. Called at most once.
	Build(spec Spec) (Widget, error)
	// Inputs delivers icon and menu activations
	Inputs() <-chan Input
	Quit()
	Name() string
}

// Widget is a built tray icon
type Widget interface {
	SetTooltip(text string)
}

// Spec describes the tray icon to build
type Spec struct {
	Icon    []byte
	Title   string
	Tooltip string
	Menu    []MenuItem
}

// MenuItem is a context menu entry; the default menu is empty
type MenuItem struct {
	ID      string
	Title   string
	Tooltip string
}

// InputKind identifies a tray input event
type InputKind string

const (
	InputClick       InputKind = "click"
	InputDoubleClick InputKind = "double_click"
	InputRightClick  InputKind = "right_click"
	InputMenu        InputKind = "menu"
)

// Input is an icon or menu activation
type Input struct {
	Kind InputKind
	// MenuID is set for InputMenu
	MenuID string
}
