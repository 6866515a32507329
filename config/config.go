package config

import (
	"fmt"
	"log/slog"
)

// Parser decodes raw bootstrap data into a target structure.
//
// The path parameter selects a section of the document using colon (:) as the
// separator for nested keys, e.g. "appconfig:http" navigates to doc["appconfig"]["http"].
// An empty path decodes the entire document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher reads raw bootstrap data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator validates a decoded structure.
type Validator interface {
	Validate() error
}

// Defaulter fills unset fields of a decoded structure.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that fetches, parses, defaults and validates a
// bootstrap structure such as the engine settings.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading bootstrap data: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing bootstrap data: %w", err)
		}

		if defaulter, ok := any(target).(Defaulter); ok && defaulter.SetDefaults() {
			slog.Debug("bootstrap defaults applied", slog.String("path", path))
		}

		if validator, ok := any(target).(Validator); ok {
			err := validator.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating bootstrap data: %w", err)
			}
		}

		return target, nil
	}
}
