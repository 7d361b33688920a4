// Package arena is a handle table of byte buffers owned by the host.
//
// The tile engine never allocates grid memory itself. The host allocates a
// buffer here, describes it with width, height and clip, and passes the
// Handle on every call; the engine resolves it to a slice for the duration
// of that call only.
//
// Handles are generation checked: once a buffer is released, every Handle
// that referred to it stops resolving, even after the slot is reused.
//
// Thread safety: all Table methods are safe for concurrent use. The slices
// returned by Bytes are not; callers synchronise access to buffer contents.
package arena

import (
	"errors"
	"sync"
	"unsafe"
)

// ErrStaleHandle is returned when a Handle does not name a live buffer.
var ErrStaleHandle = errors.New("arena: stale or unknown handle")

// Handle names one buffer in a Table. The zero Handle is never valid.
type Handle struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h == Handle{} }

type slot struct {
	buf  []byte
	gen  uint32
	live bool
}

// Table allocates, resolves and releases buffers.
//
// Released buffers are kept per byte size and handed out again, cleared,
// to later allocations of the same size.
//
// Table must not be copied after creation (has mutex).
type Table struct {
	mu      sync.Mutex
	slots   []slot
	free    []uint32
	buckets map[int][][]byte
	maxKeep int // max buffers per size bucket
}

// New creates a Table keeping at most maxPerBucket released buffers of each
// size. A maxPerBucket of 0 keeps none.
func New(maxPerBucket int) *Table {
	return &Table{
		buckets: make(map[int][][]byte),
		maxKeep: maxPerBucket,
	}
}

// Alloc returns a Handle to a zeroed buffer of n bytes.
// The buffer is 8-byte aligned so word grids can view it directly.
func (t *Table) Alloc(n int) Handle {
	if n < 0 {
		n = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	buf := t.takeLocked(n)
	var idx uint32
	if k := len(t.free); k > 0 {
		idx = t.free[k-1]
		t.free = t.free[:k-1]
	} else {
		t.slots = append(t.slots, slot{})
		// #nosec G115 -- slot count is bounded by memory
		idx = uint32(len(t.slots) - 1)
	}
	s := &t.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.buf = buf
	s.live = true
	return Handle{Index: idx, Gen: s.gen}
}

// Bytes resolves h to its buffer.
func (t *Table) Bytes(h Handle) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.lookupLocked(h)
	if !ok {
		return nil, ErrStaleHandle
	}
	return s.buf, nil
}

// Resize grows or shrinks the buffer behind h to n bytes, keeping the
// common prefix. New bytes are zero. The Handle stays valid; previously
// resolved slices must not be used afterwards.
func (t *Table) Resize(h Handle, n int) error {
	if n < 0 {
		n = 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.lookupLocked(h)
	if !ok {
		return ErrStaleHandle
	}
	if n == len(s.buf) {
		return nil
	}
	next := t.takeLocked(n)
	copy(next, s.buf)
	t.putLocked(s.buf)
	s.buf = next
	return nil
}

// Release frees the buffer behind h. Every copy of h becomes stale.
func (t *Table) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.lookupLocked(h)
	if !ok {
		return ErrStaleHandle
	}
	t.putLocked(s.buf)
	s.buf = nil
	s.live = false
	t.free = append(t.free, h.Index)
	return nil
}

// Live returns the number of allocated buffers.
func (t *Table) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots) - len(t.free)
}

func (t *Table) lookupLocked(h Handle) (*slot, bool) {
	if int(h.Index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return nil, false
	}
	return s, true
}

// takeLocked pops a pooled buffer of n bytes or allocates a new one.
func (t *Table) takeLocked(n int) []byte {
	if bucket := t.buckets[n]; len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		t.buckets[n] = bucket[:len(bucket)-1]
		clear(buf)
		return buf
	}
	return alignedBytes(n)
}

// putLocked keeps buf for reuse if its bucket has room.
func (t *Table) putLocked(buf []byte) {
	if len(buf) == 0 || len(t.buckets[len(buf)]) >= t.maxKeep {
		return
	}
	t.buckets[len(buf)] = append(t.buckets[len(buf)], buf)
}

// alignedBytes allocates n bytes backed by uint64 words.
func alignedBytes(n int) []byte {
	if n == 0 {
		return []byte{}
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), n)
}
