package instance

import (
	"os"
	"strings"
)

// EnvInstanceID overrides the detected instance identifier.
const EnvInstanceID = "CUSTOMERCORE_INSTANCE_ID"

// GetID returns the process instance identifier used in log lines. It prefers
// the explicit override, then the platform dyno name, then the hostname.
func GetID() string {
	for _, key := range []string{EnvInstanceID, "DYNO"} {
		if id := strings.TrimSpace(os.Getenv(key)); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
