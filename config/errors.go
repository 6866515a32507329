package config

import (
	"errors"
	"fmt"

	"github.com/kkarski/appconfig/config/location"
)

// ErrMalformedLocator is returned when a locator cannot be decomposed into scheme and path.
var ErrMalformedLocator = location.ErrMalformedLocator

// ErrNotApplicable is returned when a locator operation does not apply to its scheme.
var ErrNotApplicable = location.ErrNotApplicable

// ErrResourceNotFound is returned by a Source when the target does not exist.
// The merge walk treats it as "no override at this level" and keeps going.
var ErrResourceNotFound = errors.New("resource not found")

// ErrFetch matches every *FetchError via errors.Is.
var ErrFetch = errors.New("fetch failed")

// ErrHostIdentity is returned when no usable host name could be determined.
var ErrHostIdentity = errors.New("host identity unavailable")

// ErrNoConfigurationFound is returned when a resolution produced no values.
var ErrNoConfigurationFound = errors.New("no configuration found")

// ErrConversion matches every *ConversionError via errors.Is.
var ErrConversion = errors.New("conversion failed")

// FetchError reports a transport, authorization or decoding failure for one locator.
// It aborts the resolution attempt it occurred in.
type FetchError struct {
	Locator string
	// StatusCode is the HTTP status for remote sources, zero otherwise.
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Locator, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("fetch %s: %v", e.Locator, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetch) hold for any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// NotFound wraps ErrResourceNotFound with the locator that was missing.
func NotFound(locator string) error {
	return fmt.Errorf("%w: %s", ErrResourceNotFound, locator)
}

// ConversionError reports a typed read whose raw value could not be coerced.
type ConversionError struct {
	Key   string
	Value string
	Type  string
	Err   error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %q (value %q) to %s: %v", e.Key, e.Value, e.Type, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConversion) hold for any ConversionError.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}
