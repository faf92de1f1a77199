package identifier

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorStartsAtBase(t *testing.T) {
	a := NewAllocator(100000)
	assert.Equal(t, int64(100000), a.Next())
	assert.Equal(t, int64(100001), a.Next())
	assert.Equal(t, int64(100002), a.Peek())
}

func TestAllocatorConcurrentIdsAreDistinct(t *testing.T) {
	const workers, perWorker = 32, 500
	a := NewAllocator(EntityBase)

	results := make([][]int64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]int64, perWorker)
			for i := range ids {
				ids[i] = a.Next()
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	seen := make(map[int64]struct{}, workers*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			_, dup := seen[id]
			require.False(t, dup, "id %d allocated twice", id)
			seen[id] = struct{}{}
		}
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestGlobalRuntimeIdsAreMonotonic(t *testing.T) {
	first := NextRuntimeID()
	second := NextRuntimeID()
	assert.Greater(t, second, first)
}

func TestBuildDescriptor(t *testing.T) {
	a := NewAllocator(100000)
	d := NewBuilder().WithAllocator(a).
		Identifier("minecraft:armor_stand").
		SpawnEgg(true).
		Summonable(true).
		Build()

	assert.Equal(t, "minecraft:armor_stand", d.Identifier())
	assert.True(t, d.HasSpawnEgg())
	assert.True(t, d.IsSummonable())
	assert.Equal(t, int64(100000), d.RuntimeID())
	assert.Equal(t, "", d.BaseID())
	assert.False(t, d.Experimental())

	other := NewBuilder().WithAllocator(a).Identifier("geyser:display").Build()
	assert.Equal(t, int64(100001), other.RuntimeID())
}

func TestProcessWideBuildNeverRepeats(t *testing.T) {
	a := Build("geyser:a", false, false)
	b := Build("geyser:a", false, false)
	assert.NotEqual(t, a.RuntimeID(), b.RuntimeID())
	assert.GreaterOrEqual(t, a.RuntimeID(), EntityTypeBase)
}

func TestRegistryKeepsFirstDescriptor(t *testing.T) {
	r := NewRegistry(NewAllocator(500))
	first := r.Register("geyser:item_display", false, true)
	again := r.Register("geyser:item_display", true, false)
	block := r.Register("geyser:block_display", false, true)

	assert.Equal(t, first, again)
	assert.Equal(t, int64(500), first.RuntimeID())
	assert.Equal(t, int64(501), block.RuntimeID())
}
