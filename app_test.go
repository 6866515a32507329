package appconfig_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/kkarski/appconfig"
	"github.com/kkarski/appconfig/engine"
	"github.com/kkarski/appconfig/logging"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"hosts.properties":       {Data: []byte("*=env/prod\n")},
		"env/default.properties": {Data: []byte("timeout=30\nlog.root.level=warn\n")},
		"env/prod/default.yml":   {Data: []byte("timeout: 45\n")},
	}
}

func freePort(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func TestNewApp_CreatesAppWithDefaultLogLevel(t *testing.T) {
	t.Parallel()

	app := appconfig.NewApp(appconfig.WithLogOutput(io.Discard))
	require.NotNil(t, app)
}

func TestNewApp_WithModules(t *testing.T) {
	t.Parallel()

	var invoked bool

	module := fx.Module("test",
		fx.Invoke(func() {
			invoked = true
		}),
	)

	app := appconfig.NewApp(appconfig.WithLogOutput(io.Discard), appconfig.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.True(t, invoked)
}

func TestNewApp_LoggingIsAvailableInFxContainer(t *testing.T) {
	t.Parallel()

	var (
		capturedLogger *slog.Logger
		capturedConfig logging.LoggerConfig
		capturedLevel  *slog.LevelVar
	)

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger, config logging.LoggerConfig, levelVar *slog.LevelVar) {
			capturedLogger = logger
			capturedConfig = config
			capturedLevel = levelVar
		}),
	)

	app := appconfig.NewApp(
		appconfig.WithLogLevel("warn"),
		appconfig.WithLogOutput(io.Discard),
		appconfig.WithModules(module),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })

	require.NotNil(t, capturedLogger)
	require.Equal(t, "warn", capturedConfig.Level)
	require.Same(t, capturedConfig.LevelVar, capturedLevel)
	require.Equal(t, slog.LevelWarn, capturedLevel.Level())
}

func TestNewApp_WithEngine(t *testing.T) {
	t.Parallel()

	var (
		buf      bytes.Buffer
		resolved *engine.Engine
		levelVar *slog.LevelVar
	)

	app := appconfig.NewApp(
		appconfig.WithLogLevel("debug"),
		appconfig.WithLogOutput(&buf),
		appconfig.WithEngine(
			engine.WithHostsFile("classpath:hosts.properties"),
			engine.WithFS(testFS()),
		),
		appconfig.WithModules(fx.Invoke(func(e *engine.Engine, lv *slog.LevelVar) {
			resolved = e
			levelVar = lv
		})),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	assert.Equal(t, engine.StateFresh, resolved.State())
	assert.Equal(t, "45", engine.GetOr(resolved, "timeout", ""))
	assert.Equal(t, slog.LevelWarn, levelVar.Level(), "resolved log.root.level drives the logger")
	assert.Contains(t, buf.String(), "configuration merged")
}

func TestNewApp_StartFailsWhenConfigurationIsMissing(t *testing.T) {
	t.Parallel()

	app := appconfig.NewApp(
		appconfig.WithLogOutput(io.Discard),
		appconfig.WithEngine(
			engine.WithHostsFile("classpath:hosts.properties"),
			engine.WithFS(fstest.MapFS{}),
		),
		appconfig.WithModules(fx.Invoke(func(*engine.Engine) {})),
	)

	require.Error(t, app.Start())
}

func TestNewApp_WithConfigEndpoint(t *testing.T) {
	t.Parallel()

	addr := freePort(t)

	app := appconfig.NewApp(
		appconfig.WithLogOutput(io.Discard),
		appconfig.WithEngine(
			engine.WithHostsFile("classpath:hosts.properties"),
			engine.WithFS(testFS()),
			engine.WithHostOverride("web-01"),
		),
		appconfig.WithConfigEndpoint(addr),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://"+addr+"/?key=timeout", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // G704: test code, URL from test server
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	var body map[string]string

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"key": "timeout", "value": "45"}, body)
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := appconfig.NewApp(appconfig.WithLogOutput(io.Discard), appconfig.WithModules(module))

	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_NilApp(t *testing.T) {
	t.Parallel()

	var app *appconfig.App

	require.Error(t, app.Start())
	require.Error(t, app.Stop())
	require.NotPanics(t, func() {
		app.Run()
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	module := fx.Module("test",
		fx.Invoke(func(shutdowner fx.Shutdowner) {
			go func() {
				_ = shutdowner.Shutdown()
			}()
		}),
	)

	app := appconfig.NewApp(appconfig.WithLogOutput(io.Discard), appconfig.WithModules(module))

	require.NotPanics(t, func() {
		app.Run()
	})
}
