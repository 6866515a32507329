// Package properties parses flat key=value configuration files.
//
// The format is the java.util.Properties text format as implemented by
// github.com/magiconair/properties: '#' and '!' start comments, '=' ':' or whitespace
// separate keys from values, and a trailing backslash continues a line. ${key}
// references are kept verbatim; expansion is left to consumers of the merged result.
package properties

import (
	"errors"
	"fmt"

	"github.com/magiconair/properties"
)

// ErrInvalidProperties is returned when data is not a valid properties document.
var ErrInvalidProperties = errors.New("invalid properties data")

// Parse decodes data into a flat map. Blank input yields an empty map.
func Parse(data []byte) (map[string]string, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}

	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProperties, err)
	}

	return props.Map(), nil
}
