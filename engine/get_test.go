package engine

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkarski/appconfig/config"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	i, err := Convert[int]("k", "42")
	require.NoError(t, err)
	assert.Equal(t, 42, i)

	b, err := Convert[bool]("k", "true")
	require.NoError(t, err)
	assert.True(t, b)

	f, err := Convert[float64]("k", "2.5")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f, 0.0001)

	d, err := Convert[time.Duration]("k", "1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	u, err := Convert[uint64]("k", "7")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u)

	s, err := Convert[string]("k", " raw ")
	require.NoError(t, err)
	assert.Equal(t, " raw ", s)

	list, err := Convert[[]string]("k", "a b c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, list)
}

func TestConvert_Failure(t *testing.T) {
	t.Parallel()

	_, err := Convert[int]("db.port", "fivethousand")

	require.ErrorIs(t, err, config.ErrConversion)

	var conversionErr *config.ConversionError
	require.ErrorAs(t, err, &conversionErr)
	assert.Equal(t, "db.port", conversionErr.Key)
	assert.Equal(t, "fivethousand", conversionErr.Value)
	assert.Equal(t, "int", conversionErr.Type)
}

func TestConvert_UnsupportedType(t *testing.T) {
	t.Parallel()

	_, err := Convert[map[string]int]("k", "v")

	require.ErrorIs(t, err, ErrUnsupportedType)
	require.ErrorIs(t, err, config.ErrConversion)
}

func TestGet(t *testing.T) {
	t.Parallel()

	files := testFiles()
	files["env/default.properties"] = &fstest.MapFile{Data: []byte("port=8080\nname=svc\nratio=half\n")}

	engine := newTestEngine(t, newCountingSource(files), newFakeClock(), WithHostOverride("hostA"))

	port, err := Get[int](engine, "port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port)

	_, err = Get[int](engine, "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)

	_, err = Get[float64](engine, "ratio")
	require.ErrorIs(t, err, config.ErrConversion)

	name, err := Get[string](engine, "name")
	require.NoError(t, err)
	assert.Equal(t, "svc", name, "a failed conversion does not affect other keys")

	assert.InDelta(t, 0.5, GetOr(engine, "ratio", 0.5), 0.0001)
	assert.Equal(t, 3, GetOr(engine, "missing", 3))
	assert.Equal(t, 8080, GetOr(engine, "port", 1))
}

func TestGetOr_NoConfiguration(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, newCountingSource(fstest.MapFS{}), newFakeClock(), WithHostOverride("hostA"))

	assert.Equal(t, "fallback", GetOr(engine, "anything", "fallback"))

	_, err := engine.Value("anything")
	assert.True(t, errors.Is(err, config.ErrResourceNotFound))
}
