package fetcher

import (
	"strings"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/location"
	"github.com/kkarski/appconfig/config/parser/properties"
	yamlparser "github.com/kkarski/appconfig/config/parser/yaml"
)

// IsStructured reports whether name carries a structured-document suffix (.yaml or .yml).
func IsStructured(name string) bool {
	lower := strings.ToLower(name)

	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// Decode turns the payload fetched from loc into flat values. Structured documents are
// flattened; everything else is read as key=value text. Failures are *config.FetchError.
func Decode(loc location.Path, data []byte) (map[string]string, error) {
	var (
		values map[string]string
		err    error
	)

	if IsStructured(loc.FileName()) {
		values, err = yamlparser.NewParser().Flatten(data, "")
	} else {
		values, err = properties.Parse(data)
	}

	if err != nil {
		return nil, &config.FetchError{Locator: loc.String(), Err: err}
	}

	return values, nil
}
