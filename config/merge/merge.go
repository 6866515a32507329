package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/location"
	"github.com/kkarski/appconfig/config/resolver"
)

// ErrNoSource is returned when no registered source serves the base locator's scheme.
var ErrNoSource = errors.New("no source for locator scheme")

// DefaultFileNames are the per-directory override files sought at every level,
// in increasing precedence.
var DefaultFileNames = []string{"default.properties", "default.yaml", "default.yml"} //nolint:gochecknoglobals // copied on use

// Merger walks from a base locator toward the root and layers the files it finds.
type Merger struct {
	resolver  *resolver.Resolver
	fileNames []string
	logger    *slog.Logger
}

// Option configures a Merger.
type Option func(*Merger)

// WithFileNames overrides DefaultFileNames. Empty names are ignored.
func WithFileNames(names ...string) Option {
	return func(m *Merger) {
		var kept []string

		for _, name := range names {
			if name != "" {
				kept = append(kept, name)
			}
		}

		if len(kept) > 0 {
			m.fileNames = kept
		}
	}
}

// WithLogger sets the logger used for walk diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Merger fetching through r.
func New(r *resolver.Resolver, opts ...Option) *Merger {
	merger := &Merger{
		resolver:  r,
		fileNames: append([]string(nil), DefaultFileNames...),
		logger:    slog.Default(),
	}

	for _, apply := range opts {
		apply(merger)
	}

	return merger
}

// FileNames returns the names sought at each level for base. A base that already
// names a file pins that name for the whole walk.
func (m *Merger) FileNames(base location.Path) []string {
	if base.HasFile() {
		return []string{base.FileName()}
	}

	return append([]string(nil), m.fileNames...)
}

// Walk fetches every candidate file from base up to the root and returns the layers
// found, ordered root first. Within one directory, layers follow FileNames order.
// A missing file is skipped; any other failure aborts the walk.
func (m *Merger) Walk(ctx context.Context, base location.Path) ([]config.Layer, error) {
	source, ok := m.resolver.ForLocation(base)
	if !ok {
		return nil, &config.FetchError{Locator: base.String(), Err: fmt.Errorf("%w: %s", ErrNoSource, base.Scheme())}
	}

	names := m.FileNames(base)

	var levels [][]config.Layer

	current := base.Dir()

	for {
		level, err := m.fetchLevel(ctx, source, current, names)
		if err != nil {
			return nil, err
		}

		levels = append(levels, level)

		parent := current.WithSegmentStripped()
		if parent.Depth() == current.Depth() {
			break
		}

		current = parent
	}

	var layers []config.Layer

	for i := len(levels) - 1; i >= 0; i-- {
		layers = append(layers, levels[i]...)
	}

	return layers, nil
}

func (m *Merger) fetchLevel(
	ctx context.Context,
	source config.Source,
	dir location.Path,
	names []string,
) ([]config.Layer, error) {
	var level []config.Layer

	for _, name := range names {
		loc := dir.WithFileName(name)

		values, err := source.Fetch(ctx, loc)

		switch {
		case err == nil:
			m.logger.Debug("configuration file found", "locator", loc.String(), "keys", len(values))

			level = append(level, config.Layer{Locator: loc.String(), Depth: loc.Depth(), Values: values})
		case errors.Is(err, config.ErrResourceNotFound):
			m.logger.Debug("no configuration file", "locator", loc.String())
		case errors.Is(err, config.ErrFetch):
			return nil, err
		default:
			return nil, &config.FetchError{Locator: loc.String(), Err: err}
		}
	}

	return level, nil
}

// Resolve walks from base and merges the layers found.
func (m *Merger) Resolve(ctx context.Context, base location.Path) (map[string]string, error) {
	layers, err := m.Walk(ctx, base)
	if err != nil {
		return nil, err
	}

	values, err := Merge(layers)
	if err != nil {
		return nil, fmt.Errorf("%w under %s", err, base.String())
	}

	m.logger.Info("configuration merged", "base", base.String(), "layers", len(layers), "keys", len(values))

	return values, nil
}

// Merge combines layers given root first: a later layer overwrites colliding keys.
// It fails with config.ErrNoConfigurationFound when the result is empty.
func Merge(layers []config.Layer) (map[string]string, error) {
	merged := make(map[string]string)

	for _, layer := range layers {
		maps.Copy(merged, layer.Values)
	}

	if len(merged) == 0 {
		return nil, config.ErrNoConfigurationFound
	}

	return merged, nil
}
