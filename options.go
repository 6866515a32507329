package appconfig

import (
	"io"

	"go.uber.org/fx"

	"github.com/kkarski/appconfig/engine"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules        []fx.Option
	LogLevel       string
	LogOutput      io.Writer
	Engine         bool
	EngineOptions  []engine.Option
	ConfigEndpoint string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the initial log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info". A resolved log.root.level replaces it at runtime.
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogOutput redirects logs, which go to stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}

// WithEngine adds the configuration engine to the application. The host identity falls
// back to PlatformHostname unless an option overrides it.
// Call multiple times to accumulate options.
func WithEngine(opts ...engine.Option) Option {
	return func(o *Options) {
		o.Engine = true
		o.EngineOptions = append(o.EngineOptions, opts...)
	}
}

// WithConfigEndpoint serves the engine's inspection handler on addr. It implies WithEngine.
func WithConfigEndpoint(addr string) Option {
	return func(o *Options) {
		o.Engine = true
		o.ConfigEndpoint = addr
	}
}
