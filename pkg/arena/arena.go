// Package arena provides a per-task scratch allocator with bulk reset.
//
// An Arena hands out typed slices carved from pre-reserved chunks. Nothing is
// freed individually; Reset rewinds every chunk so the memory is reused by the
// next photon or sample batch. An Arena must not be shared between goroutines.
package arena

import (
	"reflect"
)

// DefaultChunkLen is the number of elements reserved per chunk for each type
const DefaultChunkLen = 256

// Arena is a typed bump allocator
type Arena struct {
	chunkLen int
	slabs    map[reflect.Type]resetter
	order    []resetter
	allocs   int
}

type resetter interface {
	reset()
	reserved() int
}

// slab holds the chunks for a single element type
type slab[T any] struct {
	chunks  [][]T
	current int // index of the chunk being carved
	offset  int // next free element in chunks[current]
	size    int
}

// New creates an arena that reserves chunkLen elements per chunk for each type
func New(chunkLen int) *Arena {
	if chunkLen <= 0 {
		chunkLen = DefaultChunkLen
	}
	return &Arena{
		chunkLen: chunkLen,
		slabs:    make(map[reflect.Type]resetter),
	}
}

// Alloc returns a zeroed slice of n elements of type T owned by the arena.
// The slice is valid until the next Reset. A nil arena allocates from the heap.
func Alloc[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	if a == nil {
		return make([]T, n)
	}
	a.allocs++
	return slabFor[T](a).alloc(n, a.chunkLen)
}

// NewValue returns a pointer to a zeroed T owned by the arena
func NewValue[T any](a *Arena) *T {
	return &Alloc[T](a, 1)[0]
}

func slabFor[T any](a *Arena) *slab[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := a.slabs[key]; ok {
		return s.(*slab[T])
	}
	s := &slab[T]{}
	a.slabs[key] = s
	a.order = append(a.order, s)
	return s
}

func (s *slab[T]) alloc(n, chunkLen int) []T {
	for s.current < len(s.chunks) {
		chunk := s.chunks[s.current]
		if s.offset+n <= len(chunk) {
			out := chunk[s.offset : s.offset+n : s.offset+n]
			s.offset += n
			clear(out)
			return out
		}
		s.current++
		s.offset = 0
	}

	// Oversized requests get a chunk of their own
	chunk := make([]T, max(n, chunkLen))
	s.chunks = append(s.chunks, chunk)
	s.size += len(chunk)
	s.current = len(s.chunks) - 1
	s.offset = n
	return chunk[:n:n]
}

func (s *slab[T]) reset() {
	s.current = 0
	s.offset = 0
}

func (s *slab[T]) reserved() int {
	return s.size
}

// Reset makes all memory handed out so far available again. Slices returned
// before Reset must not be used afterwards.
func (a *Arena) Reset() {
	for _, s := range a.order {
		s.reset()
	}
	a.allocs = 0
}

// Allocations returns the number of Alloc calls since the last Reset
func (a *Arena) Allocations() int {
	return a.allocs
}

// Reserved returns the total number of elements reserved across all types
func (a *Arena) Reserved() int {
	total := 0
	for _, s := range a.order {
		total += s.reserved()
	}
	return total
}
