package engine

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/fetcher/https"
)

// HostDetector returns the platform's name for the current host.
type HostDetector func() (string, error)

type options struct {
	hostsFile    string
	ttl          time.Duration
	fileNames    []string
	hostOverride string
	shortNames   bool
	detectHost   HostDetector
	sources      []config.Source
	fsys         fs.FS
	httpOptions  []https.Option
	logger       *slog.Logger
	levelVar     *slog.LevelVar
	now          func() time.Time
}

// Option configures an Engine.
type Option func(*options)

// WithHostsFile sets the locator of the hosts registry. Required.
func WithHostsFile(locator string) Option {
	return func(o *options) {
		o.hostsFile = locator
	}
}

// WithTTL sets the initial time-to-live of a resolved snapshot. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithFileNames sets the override file names sought at every directory level.
func WithFileNames(names ...string) Option {
	return func(o *options) {
		o.fileNames = append([]string(nil), names...)
	}
}

// WithHostOverride forces the host identity. An empty value keeps platform detection.
func WithHostOverride(host string) Option {
	return func(o *options) {
		o.hostOverride = host
	}
}

// WithHostDetector sets the fallback used when no override is configured.
func WithHostDetector(detect HostDetector) Option {
	return func(o *options) {
		o.detectHost = detect
	}
}

// WithSources registers additional sources, replacing the built-in source of the same kind.
func WithSources(sources ...config.Source) Option {
	return func(o *options) {
		o.sources = append(o.sources, sources...)
	}
}

// WithFS enables "classpath:" locators served from fsys, typically an embed.FS.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithShortHostNames lets a fully qualified host use the hosts entry of its short name
// when it has no entry of its own.
func WithShortHostNames() Option {
	return func(o *options) {
		o.shortNames = true
	}
}

// WithHTTPClient sets the client used by the https source.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpOptions = append(o.httpOptions, https.WithHTTPClient(client))
		}
	}
}

// WithHTTPTimeout bounds every remote request.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.httpOptions = append(o.httpOptions, https.WithTimeout(timeout))
	}
}

// WithHTTPRetries sets how many times a failed remote request is retried.
func WithHTTPRetries(retries int) Option {
	return func(o *options) {
		o.httpOptions = append(o.httpOptions, https.WithRetry(retries, 0, 0))
	}
}

// WithHTTPHeader adds a header to every remote request.
func WithHTTPHeader(key, value string) Option {
	return func(o *options) {
		o.httpOptions = append(o.httpOptions, https.WithHeader(key, value))
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLevelVar lets the reserved log level key drive levelVar after every reload.
func WithLevelVar(levelVar *slog.LevelVar) Option {
	return func(o *options) {
		o.levelVar = levelVar
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
