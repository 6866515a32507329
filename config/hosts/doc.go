// Package hosts maps host names to the base locator their configuration lives under.
//
// The registry is a flat key=value file:
//
//	web-01.example.com=env/prod/eu
//	web-02=https://config.example.com/env/prod/us/
//	*=env/default
//
// A host is matched case-insensitively by its exact name, then by the '*' wildcard.
// WithShortNames adds a step in between that tries the short name (the text before
// the first '.'). Values without a scheme are resolved against
// the registry's own locator.
package hosts
