package tray

import "fmt"

// fakeToolkit records what the controller does to the tray
type fakeToolkit struct {
	builds   int
	buildErr error
	widget   *fakeWidget
}

type fakeWidget struct {
	tooltips []string
}

func (f *fakeToolkit) Name() string { return "fake" }

func (f *fakeToolkit) Run(ready, exit func()) {
	ready()
	exit()
}

func (f *fakeToolkit) Build(spec Spec) (Widget, error) {
	f.builds++
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	f.widget = &fakeWidget{tooltips: []string{spec.Tooltip}}
	return f.widget, nil
}

func (f *fakeToolkit) Inputs() <-chan Input { return nil }

func (f *fakeToolkit) Quit() {}

func (w *fakeWidget) SetTooltip(text string) {
	w.tooltips = append(w.tooltips, text)
}

var errNoDisplay = fmt.Errorf("no display")
