package instance

import "github.com/shasthoai/store-backend/pkg/env"

// GetID returns the process instance identifier used in logs.
func GetID() string {
	return env.First("local", "SHASTHO_INSTANCE_ID", "DYNO", "HOSTNAME")
}
