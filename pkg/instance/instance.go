package instance

import "github.com/angelmondragon/cartview/pkg/env"

// GetID names the running process for log correlation. Platform-provided
// identifiers win over the hostname.
func GetID() string {
	return env.FirstOf("local", "CARTVIEW_INSTANCE_ID", "DYNO", "HOSTNAME")
}
