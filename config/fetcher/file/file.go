package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/fetcher"
	"github.com/kkarski/appconfig/config/location"
)

// ErrPathIsDirectory is returned when a path points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Source implements config.Source for "file:" locators.
type Source struct{}

// New creates a local filesystem source.
func New() *Source {
	return &Source{}
}

// Kind returns config.KindFile.
func (s *Source) Kind() config.Kind {
	return config.KindFile
}

// Fetch reads and decodes the file addressed by loc.
func (s *Source) Fetch(ctx context.Context, loc location.Path) (map[string]string, error) {
	err := ctx.Err()
	if err != nil {
		return nil, &config.FetchError{Locator: loc.String(), Err: err}
	}

	data, err := readFile(loc.FilePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, config.NotFound(loc.String())
		}

		return nil, &config.FetchError{Locator: loc.String(), Err: err}
	}

	return fetcher.Decode(loc, data)
}

func readFile(fpath string) ([]byte, error) {
	cleanPath := filepath.Clean(filepath.FromSlash(fpath))

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return data, nil
}

// Fetcher implements config.DataFetcher for bootstrap files.
// It reads the file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns an Fx-friendly constructor for a bootstrap Fetcher.
// The returned constructor fails if the file cannot be read or is a directory.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		data, err := readFile(fpath)
		if err != nil {
			return nil, err
		}

		return &Fetcher{
			filepath: filepath.Clean(fpath),
			data:     data,
		}, nil
	}
}

// Fetch returns a copy of the cached bootstrap data.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
