package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockParser struct {
	parseFunc func(data []byte, target any, path string) error
}

func (m *mockParser) Parse(data []byte, target any, path string) error {
	return m.parseFunc(data, target, path)
}

type mockDataFetcher struct {
	fetchFunc func() ([]byte, error)
}

func (m *mockDataFetcher) Fetch() ([]byte, error) {
	return m.fetchFunc()
}

type bootstrap struct {
	HostsFile string
	TTL       int
	err       error
}

func (b *bootstrap) SetDefaults() bool {
	if b.TTL == 0 {
		b.TTL = 600

		return true
	}

	return false
}

func (b *bootstrap) Validate() error {
	return b.err
}

func staticFetcher(data string) *mockDataFetcher {
	return &mockDataFetcher{fetchFunc: func() ([]byte, error) { return []byte(data), nil }}
}

func TestProvider_AppliesDefaultsAfterParse(t *testing.T) {
	t.Parallel()

	var gotPath string

	parser := &mockParser{
		parseFunc: func(data []byte, target any, path string) error {
			gotPath = path

			cfg, ok := target.(*bootstrap)
			if !ok {
				return errors.New("invalid target type")
			}

			cfg.HostsFile = string(data)

			return nil
		},
	}

	target := &bootstrap{}

	result, err := Provider(target, "appconfig")(parser, staticFetcher("file:/etc/hosts.properties"))

	require.NoError(t, err)
	assert.Same(t, target, result)
	assert.Equal(t, "appconfig", gotPath)
	assert.Equal(t, "file:/etc/hosts.properties", result.HostsFile)
	assert.Equal(t, 600, result.TTL)
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("fetch failed")
	parseErr := errors.New("parse failed")
	validationErr := errors.New("validation failed")

	testCases := []struct {
		name      string
		fetchFunc func() ([]byte, error)
		parseFunc func(data []byte, target any, path string) error
		targetErr error
		wantErr   error
	}{
		{
			name:      "fetch error",
			fetchFunc: func() ([]byte, error) { return nil, fetchErr },
			parseFunc: func(_ []byte, _ any, _ string) error { return nil },
			wantErr:   fetchErr,
		},
		{
			name:      "parse error",
			fetchFunc: func() ([]byte, error) { return []byte("data"), nil },
			parseFunc: func(_ []byte, _ any, _ string) error { return parseErr },
			wantErr:   parseErr,
		},
		{
			name:      "validation error",
			fetchFunc: func() ([]byte, error) { return []byte("data"), nil },
			parseFunc: func(_ []byte, _ any, _ string) error { return nil },
			targetErr: validationErr,
			wantErr:   validationErr,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			target := &bootstrap{err: testCase.targetErr}
			parser := &mockParser{parseFunc: testCase.parseFunc}
			fetcher := &mockDataFetcher{fetchFunc: testCase.fetchFunc}

			result, err := Provider(target, "")(parser, fetcher)

			assert.Nil(t, result)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}
