package entities

import (
	"time"
)

// DefaultClaimDurationHours is the claim window used when a caller does not
// supply a duration (claims, auto-claims, and deploy refreshes of expired
// leases all fall back to it).
const DefaultClaimDurationHours = 8

// Lease represents a time-bounded claim by a user on one named environment.
// A zero DurationHours is an explicit release: it reads back as inactive
// immediately, so release shares the claim write path instead of needing a
// tombstone record.
type Lease struct {
	environment   string
	username      string
	claimedAt     time.Time
	durationHours float64
}

// NewLease creates a lease claimed at the given instant.
func NewLease(environment, username string, claimedAt time.Time, durationHours float64) *Lease {
	return &Lease{
		environment:   environment,
		username:      username,
		claimedAt:     claimedAt,
		durationHours: durationHours,
	}
}

// Environment returns the claimed environment name.
func (l *Lease) Environment() string { return l.environment }

// Username returns the claimant's canonical username.
func (l *Lease) Username() string { return l.username }

// ClaimedAt returns the time of the most recent claim or refresh.
func (l *Lease) ClaimedAt() time.Time { return l.claimedAt }

// DurationHours returns the claim window in hours. Zero means released.
func (l *Lease) DurationHours() float64 { return l.durationHours }

// ExpiresAt returns the instant at which the lease stops being active.
func (l *Lease) ExpiresAt() time.Time {
	return l.claimedAt.Add(time.Duration(l.durationHours * float64(time.Hour)))
}

// IsActive reports whether the lease is still live at the given instant.
// The comparison is strict: a lease exactly at its expiry threshold is
// inactive.
func (l *Lease) IsActive(now time.Time) bool {
	return now.Sub(l.claimedAt) < time.Duration(l.durationHours*float64(time.Hour))
}

// Remaining returns how much of the claim window is left at the given
// instant. Expired leases report zero.
func (l *Lease) Remaining(now time.Time) time.Duration {
	remaining := l.ExpiresAt().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
