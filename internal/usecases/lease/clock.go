package lease

import (
	"time"
)

// Clock supplies the current time. Use cases take it as a dependency so
// expiry boundaries can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
