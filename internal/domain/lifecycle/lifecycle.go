// Package lifecycle holds shared limits for start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook.
const DefaultTimeout = 10 * time.Second
