package https

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/fetcher"
	"github.com/kkarski/appconfig/config/location"
)

// DefaultTimeout bounds a single request, including reading the body.
const DefaultTimeout = 10 * time.Second

// DefaultRetryMax is the number of retries after the first attempt for 5xx and
// connection failures.
const DefaultRetryMax = 2

// DefaultMaxBodySize caps the payload read from a response.
const DefaultMaxBodySize = 4 << 20

var (
	// ErrUnexpectedStatus is returned for any non-2xx response that is not a miss.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("not authorized")

	// ErrBodyTooLarge is returned when a payload exceeds the configured limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrUnsupportedLocator is returned for locators that are not network locators.
	ErrUnsupportedLocator = errors.New("locator is not an http(s) locator")
)

// Source implements config.Source for "https:" locators.
type Source struct {
	client      *retryablehttp.Client
	header      http.Header
	maxBodySize int64
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient replaces the underlying *http.Client, e.g. to trust a private CA.
// A nil client is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		if client != nil {
			s.client.HTTPClient = client
		}
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Source) {
		if timeout > 0 {
			s.client.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetry sets the retry budget and the backoff bounds between attempts.
func WithRetry(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(s *Source) {
		s.client.RetryMax = max(retryMax, 0)

		if waitMin > 0 {
			s.client.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			s.client.RetryWaitMax = waitMax
		}
	}
}

// WithHeader adds a header sent with every request, e.g. an authorization token.
func WithHeader(key, value string) Option {
	return func(s *Source) {
		s.header.Add(key, value)
	}
}

// WithLogger routes retry diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.client.Logger = logger
		}
	}
}

// WithMaxBodySize caps the bytes read from a response body.
func WithMaxBodySize(size int64) Option {
	return func(s *Source) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// New creates a remote source.
func New(opts ...Option) *Source {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	client.RetryMax = DefaultRetryMax
	client.Logger = nil
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	source := &Source{
		client:      client,
		header:      make(http.Header),
		maxBodySize: DefaultMaxBodySize,
	}

	for _, apply := range opts {
		apply(source)
	}

	return source
}

// Kind returns config.KindHTTPS.
func (s *Source) Kind() config.Kind {
	return config.KindHTTPS
}

// Fetch GETs the resource addressed by loc and decodes it by file name.
// 404 and 410 mean the resource does not exist; every other non-2xx status,
// a transport failure or a timeout is a *config.FetchError.
func (s *Source) Fetch(ctx context.Context, loc location.Path) (map[string]string, error) {
	target := loc.String()

	if !loc.IsNetwork() {
		return nil, &config.FetchError{Locator: target, Err: ErrUnsupportedLocator}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &config.FetchError{Locator: target, Err: fmt.Errorf("create request: %w", err)}
	}

	for key, values := range s.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &config.FetchError{Locator: target, Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, config.NotFound(target)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &config.FetchError{Locator: target, StatusCode: resp.StatusCode, Err: ErrUnauthorized}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &config.FetchError{Locator: target, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize+1))
	if err != nil {
		return nil, &config.FetchError{Locator: target, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if int64(len(data)) > s.maxBodySize {
		return nil, &config.FetchError{Locator: target, StatusCode: resp.StatusCode, Err: ErrBodyTooLarge}
	}

	return fetcher.Decode(loc, data)
}
