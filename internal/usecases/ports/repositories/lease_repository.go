package repositories

import (
	"context"
)

// LeaseRecord is the raw wire shape of one lease row, exactly as the store
// holds it. ClaimedAt stays a string here: the store is written to by
// multiple deployments over the years and has accumulated rows with
// unparseable timestamps, so interpretation (parsing, expiry, catalog
// validation) belongs to the lease engine, which discards bad rows instead
// of failing a whole read.
type LeaseRecord struct {
	Environment   string
	Username      string
	ClaimedAt     string
	DurationHours float64
}

// LeaseRepository is the durable key-value table of lease records, keyed by
// environment name. Put is a full overwrite with last-writer-wins
// semantics; there is no conditional update on this interface, so
// concurrent claims on the same environment race and the last write lands.
type LeaseRepository interface {
	// Get returns the record for an environment, or nil when the store
	// holds none.
	Get(ctx context.Context, environment string) (*LeaseRecord, error)

	// Put overwrites the record for record.Environment.
	Put(ctx context.Context, record *LeaseRecord) error

	// ScanAll returns every record in the table. Adapters must follow
	// pagination to exhaustion and merge pages in receipt order; callers
	// never see a partial table.
	ScanAll(ctx context.Context) ([]*LeaseRecord, error)
}

// ConditionalLeaseRepository is an optional extension for stores that can
// do a conditional put. The lease engine does not use it, since claim
// semantics are last-writer-wins, but the seam exists so the race can be
// closed later without changing the port.
type ConditionalLeaseRepository interface {
	LeaseRepository

	// PutIfUsername overwrites the record only while the stored record's
	// username still equals expectedUsername (empty string matches a
	// missing record).
	PutIfUsername(ctx context.Context, record *LeaseRecord, expectedUsername string) error
}
