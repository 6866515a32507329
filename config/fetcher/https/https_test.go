package https

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Source) {
	t.Helper()

	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	source := New(
		WithHTTPClient(server.Client()),
		WithRetry(0, time.Millisecond, time.Millisecond),
	)

	return server, source
}

func locate(t *testing.T, server *httptest.Server, path string) location.Path {
	t.Helper()

	loc, err := location.Parse(server.URL + path)
	require.NoError(t, err)

	return loc
}

func TestSource_Fetch_Properties(t *testing.T) {
	t.Parallel()

	server, source := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/env/dev/default.properties", r.URL.Path)

		_, _ = w.Write([]byte("property.1.name=value\n"))
	})

	values, err := source.Fetch(context.Background(), locate(t, server, "/env/dev/default.properties"))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"property.1.name": "value"}, values)
}

func TestSource_Fetch_YAML(t *testing.T) {
	t.Parallel()

	server, source := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("db:\n  hosts: [a, b]\n"))
	})

	values, err := source.Fetch(context.Background(), locate(t, server, "/env/default.yaml"))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"db.hosts[0]": "a", "db.hosts[1]": "b"}, values)
}

func TestSource_Fetch_SendsHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		_, _ = w.Write([]byte("a=b\n"))
	}))
	t.Cleanup(server.Close)

	source := New(WithHTTPClient(server.Client()), WithHeader("Authorization", "Bearer token"))

	values, err := source.Fetch(context.Background(), locate(t, server, "/default.properties"))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "b"}, values)
}

func TestSource_Fetch_StatusClassification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		status     int
		notFound   bool
		wantErr    error
		wantStatus int
	}{
		{name: "not found continues walk", status: http.StatusNotFound, notFound: true},
		{name: "gone continues walk", status: http.StatusGone, notFound: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrUnauthorized, wantStatus: http.StatusForbidden},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUnexpectedStatus, wantStatus: http.StatusInternalServerError},
		{name: "unexpected status", status: http.StatusTeapot, wantErr: ErrUnexpectedStatus, wantStatus: http.StatusTeapot},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server, source := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(testCase.status)
			})

			_, err := source.Fetch(context.Background(), locate(t, server, "/env/default.properties"))

			if testCase.notFound {
				require.ErrorIs(t, err, config.ErrResourceNotFound)
				assert.NotErrorIs(t, err, config.ErrFetch)

				return
			}

			require.ErrorIs(t, err, config.ErrFetch)
			require.ErrorIs(t, err, testCase.wantErr)

			var fetchErr *config.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, testCase.wantStatus, fetchErr.StatusCode)
		})
	}
}

func TestSource_Fetch_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte("ok=true\n"))
	}))
	t.Cleanup(server.Close)

	source := New(WithHTTPClient(server.Client()), WithRetry(2, time.Millisecond, 2*time.Millisecond))

	values, err := source.Fetch(context.Background(), locate(t, server, "/default.properties"))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ok": "true"}, values)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSource_Fetch_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})

	server := httptest.NewTLSServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	source := New(
		WithHTTPClient(server.Client()),
		WithTimeout(50*time.Millisecond),
		WithRetry(0, time.Millisecond, time.Millisecond),
	)

	_, err := source.Fetch(context.Background(), locate(t, server, "/default.properties"))

	require.ErrorIs(t, err, config.ErrFetch)
}

func TestSource_Fetch_BodyTooLarge(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("key=0123456789\n"))
	}))
	t.Cleanup(server.Close)

	source := New(WithHTTPClient(server.Client()), WithMaxBodySize(4))

	_, err := source.Fetch(context.Background(), locate(t, server, "/default.properties"))

	require.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestSource_Fetch_NonNetworkLocator(t *testing.T) {
	t.Parallel()

	_, err := New().Fetch(context.Background(), location.MustParse("file:/etc/default.properties"))

	require.ErrorIs(t, err, ErrUnsupportedLocator)
	require.ErrorIs(t, err, config.ErrFetch)
}

func TestSource_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.KindHTTPS, New().Kind())
}

func TestNew_NilHTTPClientIgnored(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok=true\n"))
	}))
	t.Cleanup(server.Close)

	var source *Source

	require.NotPanics(t, func() {
		source = New(WithHTTPClient(nil), WithTimeout(time.Second))
	})

	values, err := source.Fetch(context.Background(), locate(t, server, "/default.properties"))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ok": "true"}, values)
}
