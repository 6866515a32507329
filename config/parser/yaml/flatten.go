package yaml

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// FlattenDocument converts a decoded document into a flat map.
//
// Mapping children are keyed parent.child (child alone at the root), sequence
// elements parent[i] starting at 0, and scalar leaves are rendered as strings.
// Null leaves and values outside the map/sequence/scalar model are skipped.
// yaml.MapSlice children are visited in order and plain maps in sorted key order, so a
// later child overwrites an earlier one that flattens to the same key.
// The input is never modified.
func FlattenDocument(doc any) map[string]string {
	out := make(map[string]string)
	flatten(doc, "", out)

	return out
}

func flatten(node any, key string, out map[string]string) {
	switch typed := node.(type) {
	case map[string]any:
		for _, child := range slices.Sorted(maps.Keys(typed)) {
			flatten(typed[child], join(key, child), out)
		}
	case map[any]any:
		children := make(map[string]any, len(typed))
		for child, value := range typed {
			children[fmt.Sprint(child)] = value
		}

		flatten(children, key, out)
	case yaml.MapSlice:
		for _, item := range typed {
			flatten(item.Value, join(key, fmt.Sprint(item.Key)), out)
		}
	case []any:
		for i, value := range typed {
			flatten(value, key+"["+strconv.Itoa(i)+"]", out)
		}
	default:
		if key == "" {
			return
		}

		if value, ok := scalar(node); ok {
			out[key] = value
		}
	}
}

func join(parent, child string) string {
	if parent == "" {
		return child
	}

	return parent + "." + child
}

func scalar(node any) (string, bool) {
	switch value := node.(type) {
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case uint64:
		return strconv.FormatUint(value, 10), true
	case int8, int16, int32, uint, uint8, uint16, uint32:
		return fmt.Sprint(value), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32), true
	default:
		return "", false
	}
}
