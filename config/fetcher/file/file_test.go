package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kkarski/appconfig/config"
	"github.com/kkarski/appconfig/config/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func locate(t *testing.T, path string) location.Path {
	t.Helper()

	loc, err := location.Parse("file:" + filepath.ToSlash(path))
	require.NoError(t, err)

	return loc
}

func TestSource_Fetch_Properties(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "env", "default.properties")
	writeFile(t, path, "timeout=30\nname=api\n")

	values, err := New().Fetch(context.Background(), locate(t, path))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"timeout": "30", "name": "api"}, values)
}

func TestSource_Fetch_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "default.yaml")
	writeFile(t, path, "timeout: 45\n")

	values, err := New().Fetch(context.Background(), locate(t, path))

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"timeout": "45"}, values)
}

func TestSource_Fetch_NotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "default.properties")

	_, err := New().Fetch(context.Background(), locate(t, path))

	require.ErrorIs(t, err, config.ErrResourceNotFound)
	assert.NotErrorIs(t, err, config.ErrFetch)
}

func TestSource_Fetch_DirectoryIsFetchError(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "default.properties")
	require.NoError(t, os.MkdirAll(dir, 0o750))

	_, err := New().Fetch(context.Background(), locate(t, dir))

	require.ErrorIs(t, err, config.ErrFetch)
	require.ErrorIs(t, err, ErrPathIsDirectory)
}

func TestSource_Fetch_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Fetch(ctx, location.MustParse("file:/etc/default.properties"))

	require.ErrorIs(t, err, config.ErrFetch)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSource_Kind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.KindFile, New().Kind())
}

func TestFetcher_Fetch_Success(t *testing.T) {
	t.Parallel()

	content := []byte("appconfig:\n  hosts_file: file:/etc/appconfig/hosts.properties\n")
	configPath := filepath.Join(t.TempDir(), "bootstrap.yaml")
	writeFile(t, configPath, string(content))

	fetcher, err := NewFetcher(configPath)()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, configPath, fetcher.filepath)
}

func TestFetcher_FileNotFound(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher("/nonexistent/path/bootstrap.yaml")()

	require.Error(t, err)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "stat file")
}

func TestFetcher_DirectoryPath(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(t.TempDir())()

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestFetcher_ReturnsCachedCopy(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "bootstrap.yaml")
	writeFile(t, configPath, `ttl: 60`)

	fetcher, err := NewFetcher(configPath)()
	require.NoError(t, err)

	writeFile(t, configPath, `ttl: 120`)

	first, err := fetcher.Fetch()
	require.NoError(t, err)

	first[0] = 'X'

	second, err := fetcher.Fetch()
	require.NoError(t, err)

	assert.Equal(t, []byte(`ttl: 60`), second, "Fetch should return cached, unmodified data")
}
