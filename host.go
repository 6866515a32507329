package appconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/kkarski/appconfig/config"
)

// HostOverrideEnv names the environment variable that forces the host identity.
const HostOverrideEnv = "APPCONFIG_HOST"

// HostOverride returns the trimmed value of HostOverrideEnv.
func HostOverride() string {
	return strings.TrimSpace(os.Getenv(HostOverrideEnv))
}

// PlatformHostname returns the host identity: HostOverrideEnv when set, otherwise the
// name reported by the kernel.
func PlatformHostname() (string, error) {
	if override := HostOverride(); override != "" {
		return override, nil
	}

	host, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("%w: %w", config.ErrHostIdentity, err)
	}

	return host, nil
}
