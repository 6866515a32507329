package appconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/kkarski/appconfig/engine"
	"github.com/kkarski/appconfig/listener"
	"github.com/kkarski/appconfig/logging"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is an Fx application that resolves the host configuration on start.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	var output io.Writer = os.Stderr
	if options.LogOutput != nil {
		output = options.LogOutput
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, LevelVar: new(slog.LevelVar)}
	logger := logging.NewLogger(loggerConfig, output)
	slog.SetDefault(logger)

	modules := []fx.Option{
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(loggerConfig),
		fx.Supply(logger, loggerConfig.LevelVar),
	}

	if options.Engine {
		engineOptions := append([]engine.Option{engine.WithHostDetector(PlatformHostname)}, options.EngineOptions...)
		modules = append(modules, engine.NewModule(engineOptions...))
	}

	if options.ConfigEndpoint != "" {
		modules = append(modules, listener.NewModule(engine.ModuleName, listener.WithAddress(options.ConfigEndpoint)))
	}

	modules = append(modules, options.Modules...)

	return fx.New(modules...)
}

// Start starts the Fx application, resolving the configuration when the engine is enabled.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
