package ports

import "time"

// Clock supplies the current instant. Injected so day-boundary behavior is
// testable with a fixed time.
type Clock interface {
	Now() time.Time
}
