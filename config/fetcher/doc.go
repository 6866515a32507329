// Package fetcher holds the payload decoding shared by the configuration sources.
//
// The sources themselves live in subpackages:
//   - file: local filesystem ("file:" locators), plus the bootstrap DataFetcher
//   - embedded: an fs.FS compiled into the binary ("classpath:" locators)
//   - https: remote HTTP(S) endpoints ("https:" locators)
//
// Each returns an error wrapping config.ErrResourceNotFound when the target does not
// exist and a *config.FetchError for every other failure.
package fetcher
