package yaml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrKeyConflict is returned by Expand when two keys disagree on a node's shape.
var ErrKeyConflict = errors.New("conflicting keys")

// ErrInvalidKey is returned by Expand for keys it cannot split into segments.
var ErrInvalidKey = errors.New("invalid key")

const maxIndex = 1 << 16

type token struct {
	name  string
	index int
	isIdx bool
}

// Expand rebuilds a nested document from flattened keys. It is the inverse of
// FlattenDocument for key sets that do not contain '.' or '[' inside names.
// Missing sequence positions are filled with nil.
func Expand(flat map[string]string) (any, error) {
	var root any

	for key, value := range flat {
		tokens, err := tokenize(key)
		if err != nil {
			return nil, err
		}

		root, err = insert(root, tokens, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, key)
		}
	}

	if root == nil {
		return map[string]any{}, nil
	}

	return root, nil
}

func tokenize(key string) ([]token, error) {
	var tokens []token

	for i, part := range strings.Split(key, ".") {
		name, rest, found := strings.Cut(part, "[")
		if name == "" && (i > 0 || !found) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}

		if name != "" {
			tokens = append(tokens, token{name: name})
		}

		if !found {
			continue
		}

		if !strings.HasSuffix(rest, "]") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}

		for _, raw := range strings.Split(strings.TrimSuffix("["+rest, "]"), "]") {
			index, err := strconv.Atoi(strings.TrimPrefix(raw, "["))
			if !strings.HasPrefix(raw, "[") || err != nil || index < 0 || index >= maxIndex {
				return nil, fmt.Errorf("%w: %q", ErrInvalidKey, key)
			}

			tokens = append(tokens, token{index: index, isIdx: true})
		}
	}

	return tokens, nil
}

func insert(node any, tokens []token, value string) (any, error) {
	if len(tokens) == 0 {
		if node != nil {
			return nil, ErrKeyConflict
		}

		return value, nil
	}

	head := tokens[0]

	if head.isIdx {
		var seq []any

		switch typed := node.(type) {
		case nil:
		case []any:
			seq = typed
		default:
			return nil, ErrKeyConflict
		}

		for len(seq) <= head.index {
			seq = append(seq, nil)
		}

		child, err := insert(seq[head.index], tokens[1:], value)
		if err != nil {
			return nil, err
		}

		seq[head.index] = child

		return seq, nil
	}

	var mapping map[string]any

	switch typed := node.(type) {
	case nil:
		mapping = make(map[string]any)
	case map[string]any:
		mapping = typed
	default:
		return nil, ErrKeyConflict
	}

	child, err := insert(mapping[head.name], tokens[1:], value)
	if err != nil {
		return nil, err
	}

	mapping[head.name] = child

	return mapping, nil
}
