// Package file reads configuration from the local filesystem.
//
// Source serves "file:" locators during the merge walk. A missing file is reported as
// config.ErrResourceNotFound so the walk moves on to the parent directory; a directory,
// a permission problem or an undecodable payload is a *config.FetchError.
//
// Fetcher serves the engine's bootstrap settings. It reads its file once at
// construction time and hands out copies of the cached bytes:
//
//	fetcher, err := file.NewFetcher("/etc/appconfig/bootstrap.yaml")()
//	if err != nil {
//	    // file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
package file
