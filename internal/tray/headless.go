package tray

import (
	"sync"

	"codeberg.org/mutker/powertray/internal/logger"
)

// headlessToolkit stands in for a tray when there is no graphical
// session: it keeps the pipeline running and logs every tooltip.
type headlessToolkit struct {
	inputs chan Input
	quit   chan struct{}
	once   sync.Once
	logger logger.Logger
}

type headlessWidget struct {
	logger logger.Logger
}

func newHeadlessToolkit(log logger.Logger) *headlessToolkit {
	return &headlessToolkit{
		inputs: make(chan Input),
		quit:   make(chan struct{}),
		logger: log,
	}
}

func (t *headlessToolkit) Name() string {
	return BackendHeadless
}

func (t *headlessToolkit) Run(ready, exit func()) {
	if ready != nil {
		go ready()
	}
	<-t.quit
	if exit != nil {
		exit()
	}
}

func (t *headlessToolkit) Build(spec Spec) (Widget, error) {
	t.logger.Info().
		Int("icon_bytes", len(spec.Icon)).
		Str("tooltip", spec.Tooltip).
		Msg("Headless tray built")

	return &headlessWidget{logger: t.logger}, nil
}

func (t *headlessToolkit) Inputs() <-chan Input {
	return t.inputs
}

func (t *headlessToolkit) Quit() {
	t.once.Do(func() { close(t.quit) })
}

func (w *headlessWidget) SetTooltip(text string) {
	w.logger.Info().Str("tooltip", text).Msg("Tooltip updated")
}
