// Package pool implements a fixed-block allocator for small, equally sized
// records with unpredictable lifetimes.
//
// Storage is a list of blocks, each a slice of chunkCount chunks. Every chunk
// carries a hidden header (free-list link and generation) in front of the
// payload. Free chunks form a singly linked list of global chunk indices that
// ends in a sentinel. Blocks are never moved, shrunk or compacted, so the
// payload pointer of a live chunk stays valid until the chunk is freed.
package pool

import (
	"errors"
	"fmt"
)

// nilIndex terminates the free list.
const nilIndex int32 = -1

var (
	// ErrStaleHandle is returned for handles that do not name a live chunk of
	// this pool: zero handles, out-of-range indices and handles whose chunk
	// was freed and reused.
	ErrStaleHandle = errors.New("pool: stale or foreign handle")
	// ErrDoubleFree is returned when a handle's chunk is already free.
	ErrDoubleFree = errors.New("pool: double free")
	// ErrDestroyed is returned by operations on a destroyed pool.
	ErrDestroyed = errors.New("pool: destroyed")
)

// Handle is an opaque reference to one chunk. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type header struct {
	next int32
	gen  uint32
	live bool
}

type chunk[T any] struct {
	header
	val T
}

// Pool is a growable fixed-block allocator of T values.
// A Pool is not safe for concurrent use.
type Pool[T any] struct {
	blocks     [][]chunk[T]
	head       int32
	chunkCount int
	free       int
	destroyed  bool

	// OnGrow, when set, is called after a new block has been added.
	OnGrow func(blocks int)
}

// New creates a pool holding one block of chunkCount chunks.
// chunkCount values below 1 are treated as 1.
func New[T any](chunkCount int) *Pool[T] {
	if chunkCount < 1 {
		chunkCount = 1
	}
	p := &Pool[T]{head: nilIndex, chunkCount: chunkCount}
	p.grow()
	return p
}

// grow appends one block and threads a free list through it in index order.
// Only called with an empty free list.
func (p *Pool[T]) grow() {
	block := make([]chunk[T], p.chunkCount)
	base := int32(len(p.blocks) * p.chunkCount)
	for i := range block {
		next := base + int32(i) + 1
		if i == len(block)-1 {
			next = nilIndex
		}
		block[i].next = next
		block[i].gen = 1
	}
	p.blocks = append(p.blocks, block)
	p.head = base
	p.free += p.chunkCount
	if p.OnGrow != nil {
		p.OnGrow(len(p.blocks))
	}
}

func (p *Pool[T]) at(index int32) *chunk[T] {
	return &p.blocks[int(index)/p.chunkCount][int(index)%p.chunkCount]
}

// Alloc pops the head of the free list, growing the pool by one block when
// the list is empty. The returned pointer is stable until Free.
// Alloc panics on a destroyed pool.
func (p *Pool[T]) Alloc() (Handle, *T) {
	if p.destroyed {
		panic("pool: Alloc after Destroy")
	}
	if p.head == nilIndex {
		p.grow()
	}
	index := p.head
	c := p.at(index)
	p.head = c.next
	c.next = nilIndex
	c.live = true
	p.free--
	return Handle{index: uint32(index), gen: c.gen}, &c.val
}

// lookup resolves h to its chunk. On a generation mismatch the chunk is
// returned together with ErrStaleHandle.
func (p *Pool[T]) lookup(h Handle) (*chunk[T], error) {
	if p.destroyed {
		return nil, ErrDestroyed
	}
	if h.IsZero() || int(h.index) >= len(p.blocks)*p.chunkCount {
		return nil, ErrStaleHandle
	}
	c := p.at(int32(h.index))
	if c.gen != h.gen {
		return c, ErrStaleHandle
	}
	return c, nil
}

func nextGen(g uint32) uint32 {
	g++
	if g == 0 {
		g = 1
	}
	return g
}

// Get returns the payload of a live chunk.
func (p *Pool[T]) Get(h Handle) (*T, error) {
	c, err := p.lookup(h)
	if err != nil {
		return nil, err
	}
	if !c.live {
		return nil, ErrStaleHandle
	}
	return &c.val, nil
}

// owned resolves h for Free and Release: it must name a live chunk.
func (p *Pool[T]) owned(h Handle) (*chunk[T], error) {
	c, err := p.lookup(h)
	if c != nil && err != nil && !c.live && nextGen(h.gen) == c.gen {
		// freed through h and not reused since
		return nil, ErrDoubleFree
	}
	if err != nil {
		return nil, err
	}
	if !c.live {
		// a free chunk only matches handles issued by another pool
		return nil, ErrStaleHandle
	}
	return c, nil
}

// Free returns the chunk to the head of the free list. The payload is zeroed
// and the chunk generation advanced, so copies of h stop resolving.
func (p *Pool[T]) Free(h Handle) error {
	c, err := p.owned(h)
	if err != nil {
		return err
	}
	p.release(c, int32(h.index))
	return nil
}

// Release calls fn with the payload of h and then frees the chunk. fn is
// not called when Free would fail.
func (p *Pool[T]) Release(h Handle, fn func(*T)) error {
	c, err := p.owned(h)
	if err != nil {
		return err
	}
	fn(&c.val)
	p.release(c, int32(h.index))
	return nil
}

func (p *Pool[T]) release(c *chunk[T], index int32) {
	var zero T
	c.val = zero
	c.live = false
	c.gen = nextGen(c.gen)
	c.next = p.head
	p.head = index
	p.free++
}

// Each calls fn for every live chunk in index order. fn must not allocate
// from or free into p.
func (p *Pool[T]) Each(fn func(Handle, *T)) {
	for b := range p.blocks {
		for i := range p.blocks[b] {
			c := &p.blocks[b][i]
			if c.live {
				fn(Handle{index: uint32(b*p.chunkCount + i), gen: c.gen}, &c.val)
			}
		}
	}
}

// Destroy releases every block the pool ever grew into.
func (p *Pool[T]) Destroy() {
	p.blocks = nil
	p.head = nilIndex
	p.free = 0
	p.destroyed = true
}

// FreeCount returns the number of chunks on the free list.
func (p *Pool[T]) FreeCount() int { return p.free }

// Live returns the number of allocated chunks.
func (p *Pool[T]) Live() int { return p.Cap() - p.free }

// Cap returns the total number of chunks across all blocks.
func (p *Pool[T]) Cap() int { return len(p.blocks) * p.chunkCount }

// Blocks returns the number of blocks.
func (p *Pool[T]) Blocks() int { return len(p.blocks) }

// ChunkCount returns the number of chunks per block.
func (p *Pool[T]) ChunkCount() int { return p.chunkCount }
