package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"codeberg.org/mutker/powertray/internal/config"
	"codeberg.org/mutker/powertray/internal/errors"
	"codeberg.org/mutker/powertray/internal/handoff"
	"codeberg.org/mutker/powertray/internal/icon"
	"codeberg.org/mutker/powertray/internal/logger"
	"codeberg.org/mutker/powertray/internal/metrics"
	"codeberg.org/mutker/powertray/internal/pid"
	"codeberg.org/mutker/powertray/internal/power"
	"codeberg.org/mutker/powertray/internal/sampler"
	"codeberg.org/mutker/powertray/internal/tray"
	"codeberg.org/mutker/powertray/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

const (
	appTitle       = "Battery"
	initialTooltip = "Battery: waiting for data"
	loopExitWait   = 2 * time.Second
)

func init() {
	// Tray toolkits need the native event loop on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Level(), os.Stderr)
	logger.Debug().
		Str("backend", cfg.Backend).
		Str("tray", cfg.Tray).
		Str("icon", cfg.IconPath).
		Msg("Config loaded")

	pidFile := pid.New()
	if err := pidFile.Write(); err != nil {
		logger.FatalWithCode(codeOf(errors.ErrAlreadyRunning, err)).Str("pid_file", pidFile.Path()).Msg("")
	}

	err = run(cfg)

	if rmErr := pidFile.Remove(); rmErr != nil {
		logger.Warn().Err(rmErr).Msg("Failed to remove PID file")
	}

	if err != nil {
		logger.ErrorWithCode(codeOf(errors.ErrUILoop, err)).Msg("")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	img, err := icon.Load(cfg.IconPath)
	if err != nil {
		logger.FatalWithCode(codeOf(errors.ErrLoadIcon, err)).Str("path", cfg.IconPath).Msg("")
	}

	recorder, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		logger.FatalWithCode(codeOf(errors.ErrInitApp, err)).Msg("")
	}

	source, err := power.New(cfg.Backend, logger.With("power"))
	if err != nil {
		logger.FatalWithCode(codeOf(errors.ErrPowerSource, err)).Msg("")
	}
	defer func() {
		if err := source.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close power source")
		}
	}()

	toolkit, err := tray.New(cfg.Tray, logger.With("tray"))
	if err != nil {
		logger.FatalWithCode(codeOf(errors.ErrInitApp, err)).Msg("")
	}

	logger.Info().
		Str("power_backend", source.Backend()).
		Str("tray_backend", toolkit.Name()).
		Msg("Starting powertray")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	tooltips := handoff.New[string](handoff.DefaultCapacity)

	// The sampler is never joined; it stops on cancel or once the
	// channel is closed.
	go sampler.New(source, tooltips, recorder, logger.With("sampler")).Run(ctx)

	controller := tray.NewController(toolkit, tray.Spec{
		Icon:    img.TrayBytes(),
		Title:   appTitle,
		Tooltip: initialTooltip,
	}, logger.With("tray"))
	loop := ui.New(controller, tooltips, toolkit.Inputs(), recorder, logger.With("ui"))

	loopDone := make(chan error, 1)
	toolkit.Run(func() {
		err := loop.Run(ctx)
		tooltips.Close()
		loopDone <- err
		toolkit.Quit()
	}, func() {
		// The host loop can also end on its own, e.g. when the tray
		// host goes away.
		cancel()
	})

	select {
	case err = <-loopDone:
	case <-time.After(loopExitWait):
		logger.Warn().Msg("UI loop did not stop in time")
	}

	logSummary(recorder)

	return err
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func logSummary(recorder metrics.Recorder) {
	summary, err := recorder.Summary()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to collect metrics")
	}

	logger.Info().
		Uint64("readings", summary.Readings).
		Uint64("absent", summary.Absent).
		Uint64("query_failed", summary.QueryFailed).
		Uint64("tooltip_applies", summary.Applies).
		Uint64("tray_inputs", summary.Inputs).
		Msg("Exiting...")
}

// codeOf keeps the code of a domain error and tags anything else with
// the given fallback code.
func codeOf(fallback errors.ErrorCode, err error) errors.Error {
	var domainErr errors.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	return errors.New().Wrap(fallback, err)
}
