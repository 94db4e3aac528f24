package repositories

import (
	"context"
	"fmt"
	"sync"

	portrepos "github.com/takutakahashi/demoenv-bot/internal/usecases/ports/repositories"
)

// MemoryLeaseRepository is an in-memory lease table for tests and local
// development. Unlike the DynamoDB adapter it also implements the
// conditional-put extension, which makes it useful for exercising that seam
// even though the engine itself sticks to unconditional writes.
type MemoryLeaseRepository struct {
	mu      sync.RWMutex
	records map[string]portrepos.LeaseRecord
}

// NewMemoryLeaseRepository creates an empty in-memory repository.
func NewMemoryLeaseRepository() *MemoryLeaseRepository {
	return &MemoryLeaseRepository{records: make(map[string]portrepos.LeaseRecord)}
}

// Get returns the record for an environment, or nil when absent.
func (r *MemoryLeaseRepository) Get(_ context.Context, environment string) (*portrepos.LeaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.records[environment]; ok {
		cp := rec
		return &cp, nil
	}
	return nil, nil
}

// Put overwrites the record for record.Environment.
func (r *MemoryLeaseRepository) Put(_ context.Context, record *portrepos.LeaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.Environment] = *record
	return nil
}

// ScanAll returns every stored record.
func (r *MemoryLeaseRepository) ScanAll(_ context.Context) ([]*portrepos.LeaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]*portrepos.LeaseRecord, 0, len(r.records))
	for _, rec := range r.records {
		cp := rec
		records = append(records, &cp)
	}
	return records, nil
}

// PutIfUsername overwrites the record only while the stored username still
// matches expectedUsername. An empty expectedUsername matches a missing
// record.
func (r *MemoryLeaseRepository) PutIfUsername(_ context.Context, record *portrepos.LeaseRecord, expectedUsername string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, exists := r.records[record.Environment]
	switch {
	case !exists && expectedUsername != "":
		return fmt.Errorf("conditional put failed for %q: no existing record", record.Environment)
	case exists && current.Username != expectedUsername:
		return fmt.Errorf("conditional put failed for %q: held by %q", record.Environment, current.Username)
	}
	r.records[record.Environment] = *record
	return nil
}
