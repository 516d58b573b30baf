package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of the given environment variable. Unset and
// blank both yield the fallback.
func Get(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}
