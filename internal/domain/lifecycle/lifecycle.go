// Package lifecycle holds shared constants for process startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of long-lived resources.
const DefaultTimeout = 10 * time.Second
