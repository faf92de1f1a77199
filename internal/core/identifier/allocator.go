package identifier

import "sync/atomic"

// Allocator hands out process-unique runtime ids. Ids are never reused.
type Allocator struct {
	next atomic.Int64
}

// NewAllocator returns an allocator whose first id is base.
func NewAllocator(base int64) *Allocator {
	a := &Allocator{}
	a.next.Store(base)
	return a
}

// Next returns the next id. Safe for concurrent use.
func (a *Allocator) Next() int64 {
	return a.next.Add(1) - 1
}

// Peek returns the id the next call to Next would return.
func (a *Allocator) Peek() int64 {
	return a.next.Load()
}

const (
	// EntityTypeBase is the first runtime id handed to an entity type descriptor.
	EntityTypeBase int64 = 100000
	// EntityBase is the first runtime id handed to a spawned entity.
	EntityBase int64 = 1
)

var (
	entityTypes = NewAllocator(EntityTypeBase)
	entities    = NewAllocator(EntityBase)
)

// NextRuntimeID allocates a runtime id for a spawned entity from the process-wide
// allocator shared by every session.
func NextRuntimeID() int64 {
	return entities.Next()
}

// Entities returns the process-wide entity allocator.
func Entities() *Allocator {
	return entities
}
