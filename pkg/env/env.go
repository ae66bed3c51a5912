package env

import "os"

// Get reads an environment variable, falling back when it is unset or empty.
// Empty and unset are treated the same so blank compose entries do not wipe
// defaults.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
