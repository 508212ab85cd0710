package tray

import (
	"codeberg.org/mutker/powertray/internal/logger"
	"github.com/energye/systray"
)

// inputBuffer bounds queued activations; extra clicks are dropped
const inputBuffer = 8

// systrayToolkit drives the native tray through energye/systray
type systrayToolkit struct {
	inputs chan Input
	logger logger.Logger
}

type systrayWidget struct{}

func newSystrayToolkit(log logger.Logger) *systrayToolkit {
	return &systrayToolkit{
		inputs: make(chan Input, inputBuffer),
		logger: log,
	}
}

func (t *systrayToolkit) Name() string {
	return BackendSystray
}

func (t *systrayToolkit) Run(ready, exit func()) {
	systray.Run(ready, exit)
}

func (t *systrayToolkit) Build(spec Spec) (Widget, error) {
	systray.SetIcon(spec.Icon)
	if spec.Title != "" {
		systray.SetTitle(spec.Title)
	}
	systray.SetTooltip(spec.Tooltip)

	systray.SetOnClick(func(_ systray.IMenu) {
		t.forward(Input{Kind: InputClick})
	})
	systray.SetOnDClick(func(_ systray.IMenu) {
		t.forward(Input{Kind: InputDoubleClick})
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		t.forward(Input{Kind: InputRightClick})
		if len(spec.Menu) == 0 {
			return
		}
		if err := menu.ShowMenu(); err != nil {
			t.logger.Debug().Err(err).Msg("Failed to show tray menu")
		}
	})

	for _, item := range spec.Menu {
		id := item.ID
		systray.AddMenuItem(item.Title, item.Tooltip).Click(func() {
			t.forward(Input{Kind: InputMenu, MenuID: id})
		})
	}

	return &systrayWidget{}, nil
}

// forward runs on the toolkit's callback goroutine and must not block it
func (t *systrayToolkit) forward(in Input) {
	select {
	case t.inputs <- in:
	default:
		t.logger.Debug().Str("kind", string(in.Kind)).Msg("Tray input queue full, dropping event")
	}
}

func (t *systrayToolkit) Inputs() <-chan Input {
	return t.inputs
}

func (t *systrayToolkit) Quit() {
	systray.Quit()
}

func (*systrayWidget) SetTooltip(text string) {
	systray.SetTooltip(text)
}
