package listener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.True(t, cfg.SetDefaults())
	assert.Equal(t, DefaultAddress, cfg.Address)
	assert.Equal(t, DefaultReadHeaderTimeout, cfg.ReadHeaderTimeout)
	assert.False(t, cfg.SetDefaults(), "second call changes nothing")

	cfg = &Config{Address: ":9090", ReadHeaderTimeout: time.Second}
	assert.False(t, cfg.SetDefaults())
	assert.Equal(t, ":9090", cfg.Address)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&Config{Address: ":8080"}).Validate())
	require.ErrorIs(t, (&Config{}).Validate(), ErrEmptyAddress)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	var cfg Config

	WithAddress("127.0.0.1:9000")(&cfg)
	WithReadHeaderTimeout(3 * time.Second)(&cfg)

	assert.Equal(t, Config{Address: "127.0.0.1:9000", ReadHeaderTimeout: 3 * time.Second}, cfg)
}
