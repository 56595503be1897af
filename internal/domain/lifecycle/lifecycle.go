// Package lifecycle holds shutdown and startup bounds shared by deliveries.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of a delivery.
const DefaultTimeout = 30 * time.Second
