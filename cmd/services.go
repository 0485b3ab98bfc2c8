package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dvidx/tempo/internal/adapters/broadcast"
	"github.com/dvidx/tempo/internal/adapters/notification"
	"github.com/dvidx/tempo/internal/adapters/scheduler"
	"github.com/dvidx/tempo/internal/adapters/storage"
	"github.com/dvidx/tempo/internal/config"
	"github.com/dvidx/tempo/internal/engine"
	"github.com/dvidx/tempo/internal/ports"
)

// appDeps groups all dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	logger    *zap.SugaredLogger
	storage   ports.Storage
	hub       *broadcast.Hub
	scheduler *scheduler.Wall
	notifier  *notification.Notifier
	settings  ports.SettingsProvider
	engine    *engine.Engine
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up the engine and its adapters.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
	}

	app.logger = newLogger(app.config.Log.Level)

	// Initialize notifier
	app.notifier = notification.New(&app.config.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Settings re-read from disk at every decision point, so edits made
	// while a phase runs apply to the next phase.
	app.settings = config.NewProvider()

	app.hub = broadcast.NewHub()
	app.scheduler = scheduler.NewWall()

	app.engine = engine.New(engine.Deps{
		Settings:  app.settings,
		Stats:     app.storage.Stats(),
		Snapshots: app.storage.TimerState(),
		Scheduler: app.scheduler,
		Notifier:  app.notifier,
		Publisher: app.hub,
	},
		engine.WithLogger(app.logger),
		engine.WithAutoStartDelay(time.Duration(app.config.Timer.AutoStartDelay)),
		engine.WithTickInterval(time.Duration(app.config.Timer.TickInterval)),
	)

	// Settle any phase that ended while no process was running.
	if _, err := app.engine.Reconcile(context.Background()); err != nil {
		app.logger.Warnw("failed to reconcile timer state", "error", err)
	}

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.scheduler != nil {
		app.scheduler.CancelAll()
	}
	if app.hub != nil {
		app.hub.Close()
	}
	if app.logger != nil {
		_ = app.logger.Sync()
	}
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// newLogger builds a console logger at the configured level. CLI output goes
// through fmt; the logger only carries diagnostics, on stderr.
func newLogger(level string) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return zap.New(core).Sugar()
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}
