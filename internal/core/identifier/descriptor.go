package identifier

import (
	"fmt"
	"sync"
)

// Descriptor describes an entity type exposed to the target protocol.
// It is immutable once built.
type Descriptor struct {
	identifier   string
	hasSpawnEgg  bool
	summonable   bool
	runtimeID    int64
	baseID       string
	experimental bool
}

func (d Descriptor) Identifier() string { return d.identifier }
func (d Descriptor) HasSpawnEgg() bool  { return d.hasSpawnEgg }
func (d Descriptor) IsSummonable() bool { return d.summonable }
func (d Descriptor) RuntimeID() int64   { return d.runtimeID }
func (d Descriptor) BaseID() string     { return d.baseID }

func (d Descriptor) Experimental() bool { return d.experimental }

func (d Descriptor) String() string {
	return fmt.Sprintf("%s#%d", d.identifier, d.runtimeID)
}

// Builder assembles a Descriptor. The runtime id is taken at Build time.
type Builder struct {
	identifier  string
	hasSpawnEgg bool
	summonable  bool
	ids         *Allocator
}

// NewBuilder returns a builder drawing ids from the process-wide entity type allocator.
func NewBuilder() *Builder {
	return &Builder{ids: entityTypes}
}

// WithAllocator draws the runtime id from a instead of the process-wide allocator.
func (b *Builder) WithAllocator(a *Allocator) *Builder {
	b.ids = a
	return b
}

func (b *Builder) Identifier(identifier string) *Builder {
	b.identifier = identifier
	return b
}

func (b *Builder) SpawnEgg(spawnEgg bool) *Builder {
	b.hasSpawnEgg = spawnEgg
	return b
}

func (b *Builder) Summonable(summonable bool) *Builder {
	b.summonable = summonable
	return b
}

// Build allocates the runtime id and fixes the vanilla registry fields
// (empty base id, not experimental).
func (b *Builder) Build() Descriptor {
	return Descriptor{
		identifier:   b.identifier,
		hasSpawnEgg:  b.hasSpawnEgg,
		summonable:   b.summonable,
		runtimeID:    b.ids.Next(),
		baseID:       "",
		experimental: false,
	}
}

// Build is shorthand for NewBuilder().Identifier(...).SpawnEgg(...).Summonable(...).Build().
func Build(identifier string, hasSpawnEgg, summonable bool) Descriptor {
	return NewBuilder().Identifier(identifier).SpawnEgg(hasSpawnEgg).Summonable(summonable).Build()
}

// Registry keeps one descriptor per identifier. Registering an identifier twice
// returns the first descriptor, so a type keeps the runtime id it was given.
type Registry struct {
	mu    sync.Mutex
	byID  map[string]Descriptor
	alloc *Allocator
}

func NewRegistry(alloc *Allocator) *Registry {
	if alloc == nil {
		alloc = entityTypes
	}
	return &Registry{byID: make(map[string]Descriptor), alloc: alloc}
}

func (r *Registry) Register(identifier string, hasSpawnEgg, summonable bool) Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.byID[identifier]; ok {
		return d
	}
	d := NewBuilder().WithAllocator(r.alloc).
		Identifier(identifier).
		SpawnEgg(hasSpawnEgg).
		Summonable(summonable).
		Build()
	r.byID[identifier] = d
	return d
}
