package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cast"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/fetcher/embedded"
	"github.com/kkarski/appconfig/config/fetcher/file"
	"github.com/kkarski/appconfig/config/fetcher/https"
	"github.com/kkarski/appconfig/config/hosts"
	"github.com/kkarski/appconfig/config/location"
	"github.com/kkarski/appconfig/config/merge"
	"github.com/kkarski/appconfig/config/resolver"
	"github.com/kkarski/appconfig/logging"
)

const (
	// DefaultTTL is the snapshot time-to-live until a resolved config.ttl replaces it.
	DefaultTTL = 600 * time.Second

	// TTLKey overrides the TTL, in whole seconds, for subsequent cycles.
	TTLKey = "config.ttl"

	// LogLevelKey sets the level of the attached LevelVar.
	LogLevelKey = "log.root.level"
)

// maxTTLSeconds is the largest TTL in seconds that fits a time.Duration.
const maxTTLSeconds = math.MaxInt64 / int64(time.Second)

var (
	// ErrNoHostsFile is returned by New when no hosts registry locator was configured.
	ErrNoHostsFile = errors.New("hosts file locator must not be empty")

	// ErrKeyNotFound is returned by typed reads of keys absent from the snapshot.
	ErrKeyNotFound = errors.New("key not found")
)

// Engine resolves the configuration of the current host and keeps it fresh.
//
// Reads never block on a refresh done by another caller: when the snapshot is stale,
// the first reader to notice reloads it while concurrent readers keep using the
// previous snapshot. A failed reload leaves the previous snapshot in place.
type Engine struct {
	hostsFile    location.Path
	resolver     *resolver.Resolver
	merger       *merge.Merger
	hostOverride string
	hostsOptions []hosts.Option
	detectHost   HostDetector
	logger       *slog.Logger
	levelVar     *slog.LevelVar
	now          func() time.Time
	listeners    *listenerRegistry

	snapshot    atomic.Pointer[Snapshot]
	ttl         atomic.Int64
	lastAttempt atomic.Int64
	reloading   atomic.Bool
	resolving   atomic.Bool
	lastErr     atomic.Pointer[errorBox]
	initMu      sync.Mutex
	loadMu      sync.Mutex
}

type errorBox struct {
	err error
}

// New creates an engine. Nothing is fetched until Load or the first read.
func New(opts ...Option) (*Engine, error) {
	o := options{
		ttl:    DefaultTTL,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, apply := range opts {
		apply(&o)
	}

	if strings.TrimSpace(o.hostsFile) == "" {
		return nil, ErrNoHostsFile
	}

	hostsFile, err := location.Parse(o.hostsFile)
	if err != nil {
		return nil, fmt.Errorf("hosts file: %w", err)
	}

	httpOptions := append([]https.Option{https.WithLogger(o.logger)}, o.httpOptions...)

	r := resolver.New(file.New(), https.New(httpOptions...))
	if o.fsys != nil {
		r.Register(embedded.New(o.fsys))
	}

	for _, source := range o.sources {
		r.Register(source)
	}

	engine := &Engine{
		hostsFile:    hostsFile,
		resolver:     r,
		merger:       merge.New(r, merge.WithFileNames(o.fileNames...), merge.WithLogger(o.logger)),
		hostOverride: strings.TrimSpace(o.hostOverride),
		detectHost:   o.detectHost,
		logger:       o.logger,
		levelVar:     o.levelVar,
		now:          o.now,
		listeners:    newListenerRegistry(),
	}

	if o.shortNames {
		engine.hostsOptions = append(engine.hostsOptions, hosts.WithShortNames())
	}

	engine.ttl.Store(int64(o.ttl))

	return engine, nil
}

// Load resolves the configuration now, regardless of the TTL. The previous snapshot,
// if any, is kept when resolution fails.
func (e *Engine) Load(ctx context.Context) error {
	e.lastAttempt.Store(e.now().UnixNano())

	return e.reload(ctx)
}

// TTL returns the time-to-live currently in effect.
func (e *Engine) TTL() time.Duration {
	return time.Duration(e.ttl.Load())
}

// State reports the state of the cache cell.
func (e *Engine) State() State {
	if e.resolving.Load() {
		return StateReloading
	}

	current := e.snapshot.Load()
	if current == nil {
		return StateEmpty
	}

	if e.now().Sub(current.resolvedAt) >= e.TTL() {
		return StateStale
	}

	return StateFresh
}

// LastError returns the error of the most recent failed resolution, or nil once a
// later resolution succeeded.
func (e *Engine) LastError() error {
	box := e.lastErr.Load()
	if box == nil {
		return nil
	}

	return box.err
}

// Snapshot returns the current snapshot, resolving first when there is none and
// reloading when it is stale. It fails only when no snapshot could ever be resolved.
func (e *Engine) Snapshot() (*Snapshot, error) {
	current := e.snapshot.Load()
	if current == nil {
		return e.initial()
	}

	e.refreshIfStale()

	return e.snapshot.Load(), nil
}

// Lookup returns the raw value of key.
func (e *Engine) Lookup(key string) (string, bool) {
	snapshot, err := e.Snapshot()
	if err != nil {
		return "", false
	}

	return snapshot.Lookup(key)
}

// Value returns the raw value of key, or an error when the key is absent or no
// configuration could be resolved.
func (e *Engine) Value(key string) (string, error) {
	snapshot, err := e.Snapshot()
	if err != nil {
		return "", err
	}

	value, ok := snapshot.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return value, nil
}

// Register subscribes listener to changes of key. Registering the same listener
// twice for one key has no effect. Listeners must be comparable, e.g. pointers.
func (e *Engine) Register(key string, listener ChangeListener) {
	e.listeners.register(key, listener)
}

// Deregister removes listener from key.
func (e *Engine) Deregister(key string, listener ChangeListener) {
	e.listeners.deregister(key, listener)
}

func (e *Engine) initial() (*Snapshot, error) {
	e.initMu.Lock()
	defer e.initMu.Unlock()

	if current := e.snapshot.Load(); current != nil {
		return current, nil
	}

	err := e.Load(context.Background())
	if err != nil {
		return nil, err
	}

	return e.snapshot.Load(), nil
}

func (e *Engine) refreshIfStale() {
	if !e.due() {
		return
	}

	if !e.reloading.CompareAndSwap(false, true) {
		return
	}
	defer e.reloading.Store(false)

	// Another caller may have finished a reload between due() and the swap.
	if !e.due() {
		return
	}

	e.lastAttempt.Store(e.now().UnixNano())

	err := e.reload(context.Background())
	if err != nil {
		e.logger.Warn("configuration reload failed, serving previous snapshot", "error", err)
	}
}

func (e *Engine) due() bool {
	current := e.snapshot.Load()
	if current == nil {
		return false
	}

	now := e.now()
	ttl := e.TTL()

	return now.Sub(current.resolvedAt) >= ttl && now.Sub(time.Unix(0, e.lastAttempt.Load())) >= ttl
}

func (e *Engine) reload(ctx context.Context) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	e.resolving.Store(true)
	defer e.resolving.Store(false)

	next, err := e.resolve(ctx)
	if err != nil {
		e.lastErr.Store(&errorBox{err: err})

		return err
	}

	e.lastErr.Store(nil)

	previous := e.snapshot.Swap(next)

	e.logger.Info("configuration resolved",
		"host", next.host, "base", next.base, "keys", len(next.values), "ttl", next.ttl.String())

	if previous != nil {
		e.listeners.dispatch(e.logger, previous.values, next.values)
	}

	return nil
}

func (e *Engine) resolve(ctx context.Context) (*Snapshot, error) {
	e.logger.Debug("fetching hosts registry", "locator", e.hostsFile.String())

	registry, err := hosts.Load(ctx, e.resolver, e.hostsFile, e.hostsOptions...)
	if err != nil {
		return nil, err
	}

	host, err := e.hostIdentity()
	if err != nil {
		return nil, err
	}

	base, err := registry.Lookup(host)
	if err != nil {
		return nil, err
	}

	values, err := e.merger.Resolve(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("host %q: %w", host, err)
	}

	e.applyTTL(values)
	e.applyLogLevel(values)

	return &Snapshot{
		values:     values,
		host:       host,
		base:       base.String(),
		resolvedAt: e.now(),
		ttl:        e.TTL(),
	}, nil
}

func (e *Engine) hostIdentity() (string, error) {
	if e.hostOverride != "" {
		return e.hostOverride, nil
	}

	if e.detectHost == nil {
		return "", fmt.Errorf("%w: no override and no detector", config.ErrHostIdentity)
	}

	host, err := e.detectHost()
	if err != nil {
		return "", fmt.Errorf("%w: %w", config.ErrHostIdentity, err)
	}

	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("%w: detector returned an empty name", config.ErrHostIdentity)
	}

	e.logger.Debug("host identity detected", "host", host)

	return host, nil
}

func (e *Engine) applyTTL(values map[string]string) {
	raw, ok := values[TTLKey]
	if !ok {
		return
	}

	seconds, err := cast.ToInt64E(strings.TrimSpace(raw))
	if err != nil || seconds <= 0 || seconds > maxTTLSeconds {
		e.logger.Warn("ignoring invalid time-to-live", "key", TTLKey, "value", raw)

		return
	}

	ttl := time.Duration(seconds) * time.Second
	if previous := e.ttl.Swap(int64(ttl)); previous != int64(ttl) {
		e.logger.Info("time-to-live changed", "from", time.Duration(previous).String(), "to", ttl.String())
	}
}

func (e *Engine) applyLogLevel(values map[string]string) {
	raw, ok := values[LogLevelKey]
	if !ok || e.levelVar == nil {
		return
	}

	level, ok := logging.LookupLevel(raw)
	if !ok {
		e.logger.Warn("ignoring unknown log level", "key", LogLevelKey, "value", raw)

		return
	}

	if e.levelVar.Level() != level {
		e.levelVar.Set(level)
		e.logger.Info("log level changed", "level", level.String())
	}
}
