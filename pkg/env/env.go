package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	return FirstOf(fallback, key)
}

// FirstOf returns the first non-blank variable among keys, or fallback when none is set.
func FirstOf(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return fallback
}
