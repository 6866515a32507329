package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the YAML document.
var ErrPathNotFound = errors.New("path not found")

// Parser decodes YAML documents. It implements config.Parser and flattens
// documents into dotted keys for the merge engine.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses YAML data and unmarshals it into the target.
// The path parameter specifies a navigation path using colon (:) as separator.
// Empty path parses the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	pathObj, err := yaml.PathString(convertToYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = pathObj.Read(bytes.NewReader(data), target)
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	return nil
}

// Flatten decodes data (or the section selected by path) and flattens it with
// FlattenDocument. Mappings keep document order, so when a dotted key and a nested
// path produce the same flat key, the one written later wins. A blank document
// yields an empty map.
func (p *Parser) Flatten(data []byte, path string) (map[string]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]string{}, nil
	}

	if path != "" {
		pathObj, err := yaml.PathString(convertToYAMLPath(path))
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", path, err)
		}

		node, err := pathObj.ReadNode(bytes.NewReader(data))
		if err != nil {
			if yaml.IsNotFoundNodeError(err) {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
			}

			return nil, fmt.Errorf("reading path %q: %w", path, err)
		}

		data = []byte(node.String())
	}

	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return FlattenDocument(doc), nil
}

// convertToYAMLPath converts a colon-separated path to goccy/go-yaml PathString format.
// Examples:
//   - "key" -> "$.key"
//   - "api:permissions" -> "$.api.permissions"
func convertToYAMLPath(path string) string {
	return "$." + strings.Join(strings.Split(path, ":"), ".")
}
