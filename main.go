package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/soar/GamepadKeyMouse/internal/config"
	"github.com/soar/GamepadKeyMouse/internal/dispatch"
	"github.com/soar/GamepadKeyMouse/internal/gamepad"
	"github.com/soar/GamepadKeyMouse/internal/hub"
	"github.com/soar/GamepadKeyMouse/internal/inject"
	"github.com/soar/GamepadKeyMouse/internal/keyboard"
	"github.com/soar/GamepadKeyMouse/internal/osk"
	"github.com/soar/GamepadKeyMouse/internal/server"
	"github.com/soar/GamepadKeyMouse/internal/sound"
	"github.com/soar/GamepadKeyMouse/internal/status"
	"github.com/soar/GamepadKeyMouse/internal/termview"
	"github.com/soar/GamepadKeyMouse/internal/tray"
)

// os.Interrupt is SIGINT on Unix and Ctrl+C on Windows.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	os.Exit(run())
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zc.OutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func run() int {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	defer signal.Stop(sigCh)

	backend, err := inject.Open(cfg.Backend, cfg.UinputPath, logger.Named("inject"))
	if err != nil {
		logger.Errorw("cannot open injection backend", "backend", cfg.Backend, "error", err)
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warnw("closing injection backend", "error", err)
		}
	}()

	layout := keyboard.QWERTY()
	kb := osk.New(layout, backend, clock.New(), osk.Options{
		NavDelay:  cfg.NavDelay,
		Threshold: cfg.NavThreshold,
		Diagonal:  cfg.Diagonal,
		Reopen:    cfg.Reopen,
	}, logger.Named("osk"))

	if cfg.Sound {
		clicker := sound.NewClicker()
		if err := clicker.Init(); err != nil {
			// Non-fatal, typing works without the click.
			logger.Warnw("audio initialization failed", "error", err)
		} else {
			defer clicker.Close()
			kb.Tracker().OnPress(clicker.Click)
		}
	}

	disp := dispatch.New(kb, backend, backend, dispatch.Options{
		Deadzone:         cfg.Deadzone,
		MaxSpeed:         cfg.MaxSpeed,
		ScrollSpeed:      cfg.ScrollSpeed,
		TriggerThreshold: cfg.TriggerThreshold,
	}, logger.Named("dispatch"))

	reader := gamepad.NewReader(logger.Named("gamepad"))
	loop := dispatch.NewLoop(reader, disp, clock.New(), cfg.FrameDelay, logger.Named("loop"))

	// Closed by the terminal view or the tray.
	shutdownRequested := make(chan struct{})
	requestShutdown := sync.OnceFunc(func() { close(shutdownRequested) })

	if cfg.TerminalView {
		tv, err := termview.Open(layout, requestShutdown, logger.Named("termview"))
		if err != nil {
			logger.Errorw("cannot open terminal view", "error", err)
			return 1
		}
		loop.AddView(tv)
		tvDone := make(chan struct{})
		go func() {
			tv.Run(ctx)
			close(tvDone)
		}()
		// The screen must be restored before anything else is printed.
		defer func() {
			cancel()
			<-tvDone
		}()
	} else {
		line := status.New(os.Stdout, layout)
		loop.AddView(line)
		defer line.Finish()
	}

	var srv *server.Server
	serverErrCh := make(chan error, 1)
	viewURL := ""
	if cfg.ViewAddr != "" {
		h := hub.NewHub(logger.Named("hub"))
		go h.Run(ctx)
		broadcaster := hub.NewBroadcaster(h, layout, reader, logger.Named("broadcast"))
		go broadcaster.Run(ctx)
		loop.AddView(broadcaster)

		srv, err = server.New(h, broadcaster, loop, viewAssets(), cfg.ViewAddr, logger.Named("server"))
		if err != nil {
			logger.Errorw("cannot prepare keyboard view", "error", err)
			return 1
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrCh <- err
			}
		}()
		viewURL = "http://" + cfg.ViewAddr
		logger.Infow("keyboard view listening", "url", viewURL)
	}

	if cfg.Tray {
		t := tray.New(viewURL, requestShutdown, logger.Named("tray"))
		loop.AddView(t)
		go t.Run(tray.Icon())
		defer t.Quit()
	}

	loopErrCh := make(chan error, 1)
	go func() {
		loopErrCh <- loop.Run(ctx)
	}()

	exitCode := 0
	select {
	case <-sigCh:
		logger.Info("shutting down")
		cancel()
		exitCode = loopExit(<-loopErrCh, logger)
	case <-shutdownRequested:
		logger.Info("shutdown requested")
		cancel()
		exitCode = loopExit(<-loopErrCh, logger)
	case err := <-serverErrCh:
		logger.Errorw("keyboard view server failed", "error", err)
		cancel()
		loopExit(<-loopErrCh, logger)
		exitCode = 1
	case err := <-loopErrCh:
		cancel()
		exitCode = loopExit(err, logger)
	}

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnw("keyboard view shutdown", "error", err)
		}
	}
	logger.Info("GamepadKeyMouse stopped")
	return exitCode
}

func loopExit(err error, logger *zap.SugaredLogger) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, gamepad.ErrNoController):
		logger.Error("no controller found, connect one and start again")
	default:
		logger.Errorw("input loop failed", "error", err)
	}
	return 1
}
