// Package https fetches configuration files from HTTP(S) endpoints.
//
// Requests go through github.com/hashicorp/go-retryablehttp: connection errors and
// 5xx responses are retried with backoff up to the configured budget, and every attempt
// is bounded by the client timeout. Status codes are classified as:
//
//	200-299   decoded by file name (.yaml/.yml flattened, anything else key=value)
//	404, 410  config.ErrResourceNotFound, so the merge walk continues at the parent
//	401, 403  *config.FetchError wrapping ErrUnauthorized
//	other     *config.FetchError wrapping ErrUnexpectedStatus
package https
