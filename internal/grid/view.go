// Package grid provides bounds-checked views over externally owned tile
// buffers.
//
// A View never owns its data. All shape, clip and length validation happens
// in the constructors; the algorithms built on top only ask ValidCoord and
// iterate Spans.
package grid

import (
	"errors"
	"unsafe"
)

// Common errors for view construction.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")

	// ErrInvalidClip is returned when the clip rectangle leaves the grid.
	ErrInvalidClip = errors.New("grid: clip rectangle outside grid")

	// ErrSizeMismatch is returned when the buffer length is not exactly
	// width*height*entrySize bytes.
	ErrSizeMismatch = errors.New("grid: buffer size mismatch")

	// ErrMisaligned is returned when a word buffer is not 4-byte aligned.
	ErrMisaligned = errors.New("grid: word buffer misaligned")

	// ErrDimensionMismatch is returned when grids combined in one operation
	// differ in size.
	ErrDimensionMismatch = errors.New("grid: grids differ in size")
)

// Element is a tile entry type.
type Element interface {
	~uint8 | ~uint32
}

// View is a typed window over a borrowed flat buffer.
//
// The zero View is empty: every operation on it is a no-op.
type View[T Element] struct {
	data   []T
	width  int
	height int
	clip   Rect
}

// New wraps data as a width×height grid clipped to clip.
// Zero width, height or clip extent yields a valid empty view.
func New[T Element](data []T, width, height int, clip Rect) (View[T], error) {
	if width < 0 || height < 0 {
		return View[T]{}, ErrInvalidDimensions
	}
	if !clip.Within(width, height) {
		return View[T]{}, ErrInvalidClip
	}
	if len(data) != width*height {
		return View[T]{}, ErrSizeMismatch
	}
	return View[T]{data: data, width: width, height: height, clip: clip}, nil
}

// Words reinterprets a byte buffer as one uint32 per tile.
func Words(b []byte, width, height int, clip Rect) (View[uint32], error) {
	if width < 0 || height < 0 {
		return View[uint32]{}, ErrInvalidDimensions
	}
	if len(b) != width*height*4 {
		return View[uint32]{}, ErrSizeMismatch
	}
	if len(b) == 0 {
		return New[uint32](nil, width, height, clip)
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%unsafe.Alignof(uint32(0)) != 0 {
		return View[uint32]{}, ErrMisaligned
	}
	return New(unsafe.Slice((*uint32)(p), len(b)/4), width, height, clip)
}

// Bytes wraps a byte buffer as one uint8 per tile.
func Bytes(b []byte, width, height int, clip Rect) (View[uint8], error) {
	return New(b, width, height, clip)
}

// Width returns the grid width.
func (v View[T]) Width() int { return v.width }

// Height returns the grid height.
func (v View[T]) Height() int { return v.height }

// Clip returns the clip rectangle.
func (v View[T]) Clip() Rect { return v.clip }

// Data returns the backing slice.
func (v View[T]) Data() []T { return v.data }

// Empty reports whether the view covers no tiles inside its clip.
func (v View[T]) Empty() bool { return v.clip.IsEmpty() || len(v.data) == 0 }

// IsClipped reports whether the clip is a strict subset of the grid.
func (v View[T]) IsClipped() bool {
	return v.clip.X != 0 || v.clip.Y != 0 || v.clip.W != v.width || v.clip.H != v.height
}

// SameShape reports whether the grid is width×height.
func (v View[T]) SameShape(width, height int) bool {
	return v.width == width && v.height == height
}

// Index converts (x, y) to a flat index.
func (v View[T]) Index(x, y int) int { return x + y*v.width }

// InBounds reports whether (x, y) lies inside the full grid.
func (v View[T]) InBounds(x, y int) bool {
	return x >= 0 && x < v.width && y >= 0 && y < v.height
}

// ValidCoord reports whether (x, y) lies inside the clip rectangle.
// Every bit-setting operation uses this as its authority.
func (v View[T]) ValidCoord(x, y int) bool { return v.clip.Contains(x, y) }

// At returns the entry at (x, y). The caller must have checked InBounds.
func (v View[T]) At(x, y int) T { return v.data[v.Index(x, y)] }

// Set stores value at (x, y). The caller must have checked ValidCoord.
func (v View[T]) Set(x, y int, value T) { v.data[v.Index(x, y)] = value }

// Or sets bits at (x, y) when it lies inside the clip.
func (v View[T]) Or(x, y int, bits T) {
	if v.ValidCoord(x, y) {
		v.data[v.Index(x, y)] |= bits
	}
}

// Spans calls fn with half-open index ranges covering the clip.
// An unclipped view yields the whole buffer once; a clipped view yields one
// range per clip row.
func (v View[T]) Spans(fn func(start, end int)) {
	if v.Empty() {
		return
	}
	if !v.IsClipped() {
		fn(0, len(v.data))
		return
	}
	for y := v.clip.Y; y < v.clip.Bottom(); y++ {
		start := v.Index(v.clip.X, y)
		fn(start, start+v.clip.W)
	}
}
