package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/kkarski/appconfig/config"
)

// ErrUnsupportedType is returned by Get for target types without a conversion.
var ErrUnsupportedType = errors.New("unsupported target type")

// Get reads key and converts it to T. Strings are returned verbatim; numbers, bools,
// durations, times and string slices are converted, failing with a *config.ConversionError.
func Get[T any](e *Engine, key string) (T, error) {
	var zero T

	raw, err := e.Value(key)
	if err != nil {
		return zero, err
	}

	return Convert[T](key, raw)
}

// GetOr is like Get but returns fallback when the key is missing, cannot be converted,
// or no configuration is available.
func GetOr[T any](e *Engine, key string, fallback T) T {
	value, err := Get[T](e, key)
	if err != nil {
		return fallback
	}

	return value
}

// Convert coerces the raw value of key to T.
//
//nolint:cyclop // one case per supported type
func Convert[T any](key, raw string) (T, error) {
	var (
		target    T
		converted any
		err       error
	)

	switch any(target).(type) {
	case string:
		converted = raw
	case bool:
		converted, err = cast.ToBoolE(raw)
	case int:
		converted, err = cast.ToIntE(raw)
	case int32:
		converted, err = cast.ToInt32E(raw)
	case int64:
		converted, err = cast.ToInt64E(raw)
	case uint:
		converted, err = cast.ToUintE(raw)
	case uint64:
		converted, err = cast.ToUint64E(raw)
	case float32:
		converted, err = cast.ToFloat32E(raw)
	case float64:
		converted, err = cast.ToFloat64E(raw)
	case time.Duration:
		converted, err = cast.ToDurationE(raw)
	case time.Time:
		converted, err = cast.ToTimeE(raw)
	case []string:
		converted, err = cast.ToStringSliceE(raw)
	default:
		err = ErrUnsupportedType
	}

	if err != nil {
		return target, &config.ConversionError{Key: key, Value: raw, Type: fmt.Sprintf("%T", target), Err: err}
	}

	value, ok := converted.(T)
	if !ok {
		return target, &config.ConversionError{Key: key, Value: raw, Type: fmt.Sprintf("%T", target), Err: ErrUnsupportedType}
	}

	return value, nil
}
