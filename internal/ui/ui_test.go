package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"codeberg.org/mutker/powertray/internal/handoff"
	"codeberg.org/mutker/powertray/internal/logger"
	"codeberg.org/mutker/powertray/internal/metrics"
	"codeberg.org/mutker/powertray/internal/power"
	"codeberg.org/mutker/powertray/internal/sampler"
	"codeberg.org/mutker/powertray/internal/tray"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initialTooltip = "Battery: waiting for data"

type fakeToolkit struct {
	mu     sync.Mutex
	builds int
	widget *fakeWidget
	inputs chan tray.Input
	fail   error
}

type fakeWidget struct {
	mu       sync.Mutex
	tooltips []string
}

func newFakeToolkit() *fakeToolkit {
	return &fakeToolkit{inputs: make(chan tray.Input, 8)}
}

func (f *fakeToolkit) Name() string { return "fake" }

func (f *fakeToolkit) Run(ready, exit func()) {
	ready()
	exit()
}

func (f *fakeToolkit) Build(spec tray.Spec) (tray.Widget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.builds++
	if f.fail != nil {
		return nil, f.fail
	}
	f.widget = &fakeWidget{tooltips: []string{spec.Tooltip}}

	return f.widget, nil
}

func (f *fakeToolkit) Builds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds
}

func (f *fakeToolkit) Inputs() <-chan tray.Input { return f.inputs }

func (f *fakeToolkit) Quit() {}

func (w *fakeWidget) SetTooltip(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tooltips = append(w.tooltips, text)
}

func (w *fakeWidget) Tooltips() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.tooltips...)
}

type sequenceSource struct {
	samples []power.Sample
	next    int
}

func (s *sequenceSource) Sample() power.Sample {
	sample := s.samples[s.next%len(s.samples)]
	s.next++
	return sample
}

type harness struct {
	toolkit    *fakeToolkit
	channel    *handoff.Channel[string]
	controller *tray.Controller
	loop       *Loop
}

func newHarness(rec metrics.Recorder) *harness {
	toolkit := newFakeToolkit()
	ch := handoff.New[string](handoff.DefaultCapacity)
	controller := tray.NewController(toolkit, tray.Spec{Tooltip: initialTooltip}, logger.Nop())

	return &harness{
		toolkit:    toolkit,
		channel:    ch,
		controller: controller,
		loop:       New(controller, ch, toolkit.Inputs(), rec, logger.Nop()),
	}
}

func TestStepBuildsOnFirstIteration(t *testing.T) {
	h := newHarness(metrics.Noop())

	require.NoError(t, h.loop.Step(CauseInit))
	assert.Equal(t, tray.Active, h.controller.State())
	assert.Equal(t, 1, h.toolkit.Builds())
}

func TestRepeatedInitBuildsOnce(t *testing.T) {
	h := newHarness(metrics.Noop())

	for i := 0; i < 10; i++ {
		require.NoError(t, h.loop.Step(CauseInit))
		require.NoError(t, h.loop.Step(CauseWake))
	}
	assert.Equal(t, 1, h.toolkit.Builds())
}

func TestStepAppliesAtMostOneMessage(t *testing.T) {
	h := newHarness(metrics.Noop())
	require.NoError(t, h.loop.Step(CauseInit))

	require.NoError(t, h.channel.Send("Battery: 1 W"))
	require.NoError(t, h.channel.Send("Battery: 2 W"))

	require.NoError(t, h.loop.Step(CauseWake))
	assert.Equal(t, "Battery: 1 W", h.controller.Tooltip())

	require.NoError(t, h.loop.Step(CauseWake))
	assert.Equal(t, "Battery: 2 W", h.controller.Tooltip())

	require.NoError(t, h.loop.Step(CauseWake))
	assert.Equal(t, "Battery: 2 W", h.controller.Tooltip(), "empty channel leaves the tooltip untouched")
	assert.Equal(t, []string{initialTooltip, "Battery: 1 W", "Battery: 2 W"}, h.toolkit.widget.Tooltips())
}

func TestStepBuildFailure(t *testing.T) {
	h := newHarness(metrics.Noop())
	h.toolkit.fail = fmt.Errorf("no tray host")

	require.Error(t, h.loop.Step(CauseInit))
}

func TestStepDrainsOneInput(t *testing.T) {
	rec, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	h := newHarness(rec)
	require.NoError(t, h.loop.Step(CauseInit))

	h.toolkit.inputs <- tray.Input{Kind: tray.InputClick}
	h.toolkit.inputs <- tray.Input{Kind: tray.InputRightClick}

	require.NoError(t, h.loop.Step(CauseWake))
	assert.Len(t, h.toolkit.inputs, 1)

	require.NoError(t, h.loop.Step(CauseWake))
	assert.Empty(t, h.toolkit.inputs)

	summary, err := rec.Summary()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.Inputs)
}

// The tooltip after N ticks is the text of the last published sample.
func TestMonotonicApply(t *testing.T) {
	failed := power.QueryFailed(fmt.Errorf("denied"))
	samples := []power.Sample{
		power.Reading(10), failed, failed, power.Absent(), power.Reading(12.5), failed,
	}

	h := newHarness(metrics.Noop())
	s := sampler.New(&sequenceSource{samples: samples}, h.channel, metrics.Noop(), logger.Nop())
	require.NoError(t, h.loop.Step(CauseInit))

	want := initialTooltip
	for i, sample := range samples {
		require.NoError(t, s.Tick())
		require.NoError(t, h.loop.Step(CauseWake))

		if text, ok := sampler.Tooltip(sample); ok {
			want = text
		}
		assert.Equal(t, want, h.controller.Tooltip(), "tick %d", i)
	}
}

func TestQueryFailedNeverOverwrites(t *testing.T) {
	h := newHarness(metrics.Noop())
	s := sampler.New(&sequenceSource{samples: []power.Sample{
		power.Reading(47.25), power.QueryFailed(fmt.Errorf("gone")),
	}}, h.channel, metrics.Noop(), logger.Nop())
	require.NoError(t, h.loop.Step(CauseInit))

	for i := 0; i < 6; i++ {
		require.NoError(t, s.Tick())
		require.NoError(t, h.loop.Step(CauseWake))
		assert.Equal(t, "Battery: 47.25 W", h.controller.Tooltip())
	}
}

func TestAlternatingSamplesStayWellFormed(t *testing.T) {
	source := &sequenceSource{samples: []power.Sample{
		power.Reading(9.5), power.QueryFailed(fmt.Errorf("busy")), power.Absent(),
	}}
	rec, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	h := newHarness(rec)
	s := sampler.New(source, h.channel, rec, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopDone := make(chan error, 1)
	h.loop.wake = time.Millisecond
	go func() { loopDone <- h.loop.Run(ctx) }()

	for i := 0; i < 30; i++ {
		require.NoError(t, s.Tick())
		time.Sleep(time.Millisecond)
	}

	require.Eventually(t, func() bool { return h.channel.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-loopDone)
	assert.Equal(t, tray.Destroyed, h.controller.State())

	summary, err := rec.Summary()
	require.NoError(t, err)
	assert.Equal(t, uint64(30), summary.Readings+summary.Absent+summary.QueryFailed)
	assert.Equal(t, uint64(10), summary.QueryFailed)

	tooltips := h.toolkit.widget.Tooltips()
	require.NotEmpty(t, tooltips)
	for _, text := range tooltips[1:] {
		ok := text == "Battery: 9.5 W" || text == sampler.NoBatteryText
		assert.True(t, ok, "malformed tooltip %q", text)
	}
	assert.Contains(t, []string{"Battery: 9.5 W", sampler.NoBatteryText}, h.controller.Tooltip())
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(metrics.Noop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.loop.Run(ctx) }()

	require.Eventually(t, func() bool { return h.toolkit.Builds() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, h.channel.Send("Battery: 3 W"))
	require.Eventually(t, func() bool { return h.channel.Len() == 0 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("UI loop did not stop")
	}
	assert.Equal(t, 1, h.toolkit.Builds())
}

func TestRunReturnsBuildError(t *testing.T) {
	h := newHarness(metrics.Noop())
	h.toolkit.fail = fmt.Errorf("no tray host")

	require.Error(t, h.loop.Run(context.Background()))
}

func TestCauseString(t *testing.T) {
	assert.Equal(t, "init", CauseInit.String())
	assert.Equal(t, "wake", CauseWake.String())
}
