// Package sampler polls the power source on a fixed cadence and hands
// tooltip text to the UI loop.
package sampler

import (
	"context"
	"time"

	"codeberg.org/mutker/powertray/internal/errors"
	"codeberg.org/mutker/powertray/internal/logger"
	"codeberg.org/mutker/powertray/internal/metrics"
	"codeberg.org/mutker/powertray/internal/power"
)

// Interval is the fixed sampling period. It is also the only retry
// policy for failed queries.
const Interval = time.Second

// Source produces one sample per call
type Source interface {
	Sample() power.Sample
}

// Sender accepts tooltip text without blocking
type Sender interface {
	Send(text string) error
}

type Loop struct {
	source   Source
	out      Sender
	interval time.Duration
	metrics  metrics.Recorder
	logger   logger.Logger
}

func New(source Source, out Sender, rec metrics.Recorder, log logger.Logger) *Loop {
	return &Loop{
		source:   source,
		out:      out,
		interval: Interval,
		metrics:  rec,
		logger:   log,
	}
}

// Run samples until ctx is cancelled or the consumer goes away. It is
// meant to be started with `go` and never joined; a hung query stalls
// only this goroutine.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Debug().Dur("interval", l.interval).Msg("Sampling loop started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug().Msg("Sampling loop stopped")
			return
		case <-timer.C:
		}

		if err := l.Tick(); err != nil {
			l.logger.Debug().Err(err).Msg("Tooltip consumer gone, stopping sampling loop")
			return
		}

		timer.Reset(l.interval)
	}
}

// Tick takes one sample and publishes its tooltip text. The only error
// it returns is the consumer having closed the channel.
func (l *Loop) Tick() error {
	sample := l.source.Sample()
	l.metrics.RecordSample(sample.Kind.String())

	text, ok := Tooltip(sample)
	if !ok {
		l.logger.Error().Err(sample.Err).Msg("Failed to get battery info")
		return nil
	}

	if err := l.out.Send(text); err != nil {
		if errors.HasCode(err, errors.ErrClosed) {
			return err
		}
		l.logger.Warn().Err(err).Msg("Failed to publish tooltip")
		return nil
	}

	l.logger.Debug().Str("tooltip", text).Msg("Published tooltip")

	return nil
}
