package enums

import (
	"fmt"
	"strings"
)

// StoreDriver selects the backend that holds cart state.
type StoreDriver string

const (
	StoreDriverMemory   StoreDriver = "memory"
	StoreDriverSQLite   StoreDriver = "sqlite"
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverRedis    StoreDriver = "redis"
)

var validStoreDrivers = []StoreDriver{
	StoreDriverMemory,
	StoreDriverSQLite,
	StoreDriverPostgres,
	StoreDriverRedis,
}

// String implements fmt.Stringer.
func (d StoreDriver) String() string {
	return string(d)
}

// ParseStoreDriver converts raw input into a StoreDriver, ignoring case.
func ParseStoreDriver(value string) (StoreDriver, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStoreDrivers {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store driver %q", value)
}
