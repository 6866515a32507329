// Package embedded serves "classpath:" locators from an fs.FS, typically an embed.FS
// compiled into the binary. Locator paths are taken relative to the root of the FS
// whether or not they start with a separator.
package embedded

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/fetcher"
	"github.com/kkarski/appconfig/config/location"
)

// ErrPathIsDirectory is returned when a locator points to a directory.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Source implements config.Source over an fs.FS.
type Source struct {
	fsys fs.FS
}

// New creates an embedded resource source reading from fsys.
func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Kind returns config.KindEmbedded.
func (s *Source) Kind() config.Kind {
	return config.KindEmbedded
}

// Fetch reads and decodes the resource addressed by loc.
func (s *Source) Fetch(ctx context.Context, loc location.Path) (map[string]string, error) {
	err := ctx.Err()
	if err != nil {
		return nil, &config.FetchError{Locator: loc.String(), Err: err}
	}

	name := strings.TrimPrefix(loc.FilePath(), "/")
	if name == "" {
		name = "."
	}

	if !fs.ValidPath(name) {
		return nil, &config.FetchError{Locator: loc.String(), Err: fmt.Errorf("invalid resource path %q", name)}
	}

	stat, err := fs.Stat(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, config.NotFound(loc.String())
		}

		return nil, &config.FetchError{Locator: loc.String(), Err: err}
	}

	if stat.IsDir() {
		return nil, &config.FetchError{Locator: loc.String(), Err: fmt.Errorf("resource %q: %w", name, ErrPathIsDirectory)}
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, &config.FetchError{Locator: loc.String(), Err: err}
	}

	return fetcher.Decode(loc, data)
}
