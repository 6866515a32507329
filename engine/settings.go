package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/kkarski/appconfig/config/fetcher/https"
	"github.com/kkarski/appconfig/config/location"
)

var (
	// ErrInvalidTTL is returned when the configured TTL is not positive.
	ErrInvalidTTL = errors.New("ttl must be positive")

	// ErrInvalidRetries is returned when the retry count is negative.
	ErrInvalidRetries = errors.New("retries must not be negative")
)

// Settings is the bootstrap document of the engine, typically loaded with config.Provider:
//
//	appconfig:
//	  hostsFile: file:/etc/appconfig/hosts.properties
//	  ttl: 300
//	  http:
//	    timeout: 5
//	    retries: 1
type Settings struct {
	HostsFile string `yaml:"hostsFile"`
	Host      string `yaml:"host"`
	// ShortHostNames lets web-01.example.com use a web-01 entry.
	ShortHostNames bool         `yaml:"shortHostNames"`
	TTL            int          `yaml:"ttl"`
	FileNames      []string     `yaml:"fileNames"`
	LogLevel       string       `yaml:"logLevel"`
	HTTP           HTTPSettings `yaml:"http"`
}

// HTTPSettings configures the https source.
type HTTPSettings struct {
	// Timeout is in seconds.
	Timeout int               `yaml:"timeout"`
	Retries *int              `yaml:"retries"`
	Headers map[string]string `yaml:"headers"`
}

// SetDefaults fills unset fields and reports whether anything changed.
func (s *Settings) SetDefaults() bool {
	changed := false

	if s.TTL == 0 {
		s.TTL = int(DefaultTTL / time.Second)
		changed = true
	}

	if s.HTTP.Timeout == 0 {
		s.HTTP.Timeout = int(https.DefaultTimeout / time.Second)
		changed = true
	}

	if s.HTTP.Retries == nil {
		retries := https.DefaultRetryMax
		s.HTTP.Retries = &retries
		changed = true
	}

	return changed
}

// Validate checks the settings after defaults were applied.
func (s *Settings) Validate() error {
	if s.HostsFile == "" {
		return ErrNoHostsFile
	}

	_, err := location.Parse(s.HostsFile)
	if err != nil {
		return fmt.Errorf("hostsFile: %w", err)
	}

	if s.TTL <= 0 {
		return ErrInvalidTTL
	}

	if s.HTTP.Retries != nil && *s.HTTP.Retries < 0 {
		return ErrInvalidRetries
	}

	return nil
}

// Options converts the settings into engine options.
func (s *Settings) Options() []Option {
	opts := []Option{
		WithHostsFile(s.HostsFile),
		WithHostOverride(s.Host),
		WithTTL(time.Duration(s.TTL) * time.Second),
		WithHTTPTimeout(time.Duration(s.HTTP.Timeout) * time.Second),
	}

	if s.ShortHostNames {
		opts = append(opts, WithShortHostNames())
	}

	if len(s.FileNames) > 0 {
		opts = append(opts, WithFileNames(s.FileNames...))
	}

	if s.HTTP.Retries != nil {
		opts = append(opts, WithHTTPRetries(*s.HTTP.Retries))
	}

	for key, value := range s.HTTP.Headers {
		opts = append(opts, WithHTTPHeader(key, value))
	}

	return opts
}
