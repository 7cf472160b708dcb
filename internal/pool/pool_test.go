package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	id    uint32
	count int
}

func TestAllocReusesMostRecentlyFreed(t *testing.T) {
	p := New[record](4)

	a, pa := p.Alloc()
	_, _ = p.Alloc()
	require.NoError(t, p.Free(a))

	c, pc := p.Alloc()
	assert.Same(t, pa, pc, "freed chunk should be handed out first")
	assert.NotEqual(t, a, c, "reallocated chunk must carry a new generation")
}

func TestLiveChunksNeverOverlap(t *testing.T) {
	for _, chunkCount := range []int{1, 2, 3, 7, 16} {
		p := New[record](chunkCount)
		seen := make(map[*record]Handle)
		for i := 0; i < 50; i++ {
			h, r := p.Alloc()
			_, dup := seen[r]
			require.False(t, dup, "chunkCount=%d: chunk handed out twice", chunkCount)
			seen[r] = h
			r.id = uint32(i)
		}
		i := uint32(0)
		p.Each(func(h Handle, r *record) {
			assert.Equal(t, i, r.id, "chunkCount=%d: payload overwritten", chunkCount)
			i++
		})
		assert.Equal(t, uint32(50), i)
	}
}

func TestGrowKeepsAddressesStable(t *testing.T) {
	p := New[record](2)
	h1, r1 := p.Alloc()
	h2, r2 := p.Alloc()
	r1.id, r2.id = 11, 22
	require.Equal(t, 1, p.Blocks())

	_, r3 := p.Alloc()
	assert.Equal(t, 2, p.Blocks())
	assert.NotSame(t, r1, r3)

	got1, err := p.Get(h1)
	require.NoError(t, err)
	got2, err := p.Get(h2)
	require.NoError(t, err)
	assert.Same(t, r1, got1)
	assert.Same(t, r2, got2)
	assert.Equal(t, uint32(11), got1.id)
	assert.Equal(t, uint32(22), got2.id)
}

func TestGrowThreadsOnlyNewBlock(t *testing.T) {
	p := New[record](3)
	var grew []int
	p.OnGrow = func(blocks int) { grew = append(grew, blocks) }

	for i := 0; i < 3; i++ {
		p.Alloc()
	}
	assert.Equal(t, 0, p.FreeCount())
	p.Alloc()
	assert.Equal(t, []int{2}, grew)
	assert.Equal(t, 2, p.FreeCount())
	assert.Equal(t, 6, p.Cap())
	assert.Equal(t, 4, p.Live())
}

func TestFreeCountRoundTrip(t *testing.T) {
	p := New[record](8)
	before := p.FreeCount()
	var hs []Handle
	for i := 0; i < 5; i++ {
		h, _ := p.Alloc()
		hs = append(hs, h)
	}
	assert.Equal(t, before-5, p.FreeCount())
	for _, h := range hs {
		require.NoError(t, p.Free(h))
	}
	assert.Equal(t, before, p.FreeCount())
}

func TestFreeZeroesPayload(t *testing.T) {
	p := New[record](1)
	h, r := p.Alloc()
	r.id, r.count = 5, 9
	require.NoError(t, p.Free(h))
	_, r2 := p.Alloc()
	assert.Equal(t, record{}, *r2)
}

func TestPreconditionViolations(t *testing.T) {
	p := New[record](2)
	h, _ := p.Alloc()
	require.NoError(t, p.Free(h))

	assert.ErrorIs(t, p.Free(h), ErrDoubleFree)
	_, err := p.Get(h)
	assert.ErrorIs(t, err, ErrStaleHandle)

	// once the chunk is reused the old handle is merely stale
	h2, _ := p.Alloc()
	assert.ErrorIs(t, p.Free(h), ErrStaleHandle)
	assert.NoError(t, p.Free(h2))

	assert.ErrorIs(t, p.Free(Handle{}), ErrStaleHandle)
	assert.ErrorIs(t, p.Free(Handle{index: 99, gen: 1}), ErrStaleHandle)
	_, err = p.Get(Handle{index: 1, gen: 7})
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestForeignHandleOnFreeChunk(t *testing.T) {
	a := New[record](2)
	b := New[record](2)
	h, _ := a.Alloc()

	// b's chunk 0 is free with the same generation
	assert.ErrorIs(t, b.Free(h), ErrStaleHandle)
	_, err := b.Get(h)
	assert.ErrorIs(t, err, ErrStaleHandle)
	assert.Equal(t, 2, b.FreeCount())
}

func TestRelease(t *testing.T) {
	p := New[record](2)
	h, r := p.Alloc()
	r.id = 42

	var seen uint32
	require.NoError(t, p.Release(h, func(r *record) { seen = r.id }))
	assert.Equal(t, uint32(42), seen)
	assert.Equal(t, 2, p.FreeCount())

	called := false
	assert.ErrorIs(t, p.Release(h, func(*record) { called = true }), ErrDoubleFree)
	assert.False(t, called)
}

func TestDestroy(t *testing.T) {
	p := New[record](4)
	h, _ := p.Alloc()
	p.Alloc()
	p.Destroy()

	assert.Equal(t, 0, p.Blocks())
	assert.Equal(t, 0, p.Cap())
	_, err := p.Get(h)
	assert.ErrorIs(t, err, ErrDestroyed)
	assert.ErrorIs(t, p.Free(h), ErrDestroyed)
	assert.Panics(t, func() { p.Alloc() })
}

func TestNewClampsChunkCount(t *testing.T) {
	p := New[record](0)
	assert.Equal(t, 1, p.ChunkCount())
	assert.Equal(t, 1, p.FreeCount())
}

func BenchmarkAllocFree(b *testing.B) {
	p := New[record](100)
	for i := 0; i < b.N; i++ {
		h, _ := p.Alloc()
		_ = p.Free(h)
	}
}
