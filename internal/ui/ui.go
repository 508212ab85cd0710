// Package ui runs the single-threaded loop that owns the tray icon.
package ui

import (
	"context"
	"time"

	"codeberg.org/mutker/powertray/internal/logger"
	"codeberg.org/mutker/powertray/internal/metrics"
	"codeberg.org/mutker/powertray/internal/tray"
)

// WakeInterval throttles the loop. Some tray backends only deliver icon
// and menu events while the loop polls, so this is a periodic wake-up
// rather than an idle wait; the exact value is tunable.
const WakeInterval = 64 * time.Millisecond

// Cause tells a loop iteration why it woke up
type Cause int

const (
	// CauseInit is the first iteration of the loop
	CauseInit Cause = iota
	// CauseWake is a regular wake-up after WakeInterval
	CauseWake
)

func (c Cause) String() string {
	if c == CauseInit {
		return "init"
	}

	return "wake"
}

// Inbox is the consuming end of the tooltip hand-off
type Inbox interface {
	TryReceive() (string, bool)
}

type Loop struct {
	controller *tray.Controller
	inbox      Inbox
	inputs     <-chan tray.Input
	wake       time.Duration
	metrics    metrics.Recorder
	logger     logger.Logger
}

func New(controller *tray.Controller, inbox Inbox, inputs <-chan tray.Input, rec metrics.Recorder, log logger.Logger) *Loop {
	return &Loop{
		controller: controller,
		inbox:      inbox,
		inputs:     inputs,
		wake:       WakeInterval,
		metrics:    rec,
		logger:     log,
	}
}

// Run drives the loop until ctx is cancelled. It returns an error only
// when the tray icon cannot be built.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(l.wake)
	defer timer.Stop()

	cause := CauseInit
	for {
		if err := l.Step(cause); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			l.controller.Destroy()
			l.logger.Debug().Msg("UI loop stopped")
			return nil
		case <-timer.C:
			timer.Reset(l.wake)
			cause = CauseWake
		}
	}
}

// Step runs one iteration: initialization on the first, then at most one
// tooltip and at most one tray input.
func (l *Loop) Step(cause Cause) error {
	if cause == CauseInit {
		if err := l.controller.Init(); err != nil {
			return err
		}
	}

	if text, ok := l.inbox.TryReceive(); ok {
		if l.controller.Apply(text) {
			l.metrics.RecordApply()
		}
	}

	select {
	case in, ok := <-l.inputs:
		if ok {
			l.metrics.RecordInput(string(in.Kind))
			l.logger.Info().
				Str("kind", string(in.Kind)).
				Str("menu_id", in.MenuID).
				Msg("Tray input")
		}
	default:
	}

	return nil
}
