// Package config defines the contracts shared by the resolution engine and its backends.
//
// It holds the error taxonomy used across the module:
//   - ErrMalformedLocator: a locator could not be parsed
//   - ErrResourceNotFound: the target does not exist; the merge walk keeps searching
//   - ErrFetch / *FetchError: transport, authorization or decoding failure; fatal to a resolution
//   - ErrHostIdentity: no usable host name
//   - ErrNoConfigurationFound: a resolution produced no values
//   - ErrConversion / *ConversionError: a typed read could not coerce its raw value
//
// Backends implement Source (see config/fetcher/file, config/fetcher/embedded and
// config/fetcher/https); config/resolver picks one per locator scheme and
// config/merge layers their results.
//
// # Bootstrap
//
// The engine's own settings are read once at startup through Provider, which chains a
// DataFetcher, a Parser with colon-separated path navigation, a Defaulter and a Validator:
//
//	provider := config.Provider(&engine.Settings{}, "appconfig")
//	fetcher, err := filefetcher.NewFetcher("/etc/appconfig/bootstrap.yaml")()
//	settings, err := provider(yamlparser.NewParser(), fetcher)
package config
