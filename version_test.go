package appconfig_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kkarski/appconfig"
)

func TestVersion_DefaultValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dev", appconfig.Version)
	require.Equal(t, "none", appconfig.Commit)
	require.Equal(t, "unknown", appconfig.CompiledAt)
}
