package tilevis

import (
	"github.com/gogpu/tilevis/arena"
	"github.com/gogpu/tilevis/internal/grid"
	"github.com/gogpu/tilevis/internal/region"
	"github.com/gogpu/tilevis/internal/vis"
)

// Rect is an integer tile rectangle used as a clip.
type Rect = grid.Rect

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h int) Rect { return grid.NewRect(x, y, w, h) }

// Cell is one decoded VisMap word.
type Cell = vis.Cell

// VisMap flag masks, for SetBits, ClearBits and InvertBits on a VisMap.
const (
	FlagOpaque                = vis.FlagOpaque
	FlagValid                 = vis.FlagValid
	FlagShadow                = vis.FlagShadow
	FlagPerspectiveReveal     = vis.FlagPerspectiveReveal
	FlagPerspectiveOcclude    = vis.FlagPerspectiveOcclude
	FlagPerspectiveIlluminate = vis.FlagPerspectiveIlluminate

	// FlagPerspective covers all three perspective flags.
	FlagPerspective = FlagPerspectiveReveal | FlagPerspectiveOcclude | FlagPerspectiveIlluminate

	// LightMask covers the light accumulator. ClearBits(visMap, LightMask)
	// resets all light before a step re-applies it.
	LightMask = vis.LightMask
)

// LightUnitsPerTile is the number of light units across one tile. Circle
// centres and radii are given in light units.
const LightUnitsPerTile = region.UnitsPerTile

// TileCenter returns the light-unit coordinate of the centre of tile t.
func TileCenter(t int) int { return region.TileCenter(t) }

// Kind identifies the entry layout of a grid buffer.
type Kind int

// Grid kinds.
const (
	KindVis    Kind = iota // packed light accumulator and flags, 4 bytes
	KindFov                // visibility channel mask, 4 bytes
	KindReveal             // ever-seen channel mask, 4 bytes
	KindLight              // displayed brightness, 1 byte
)

// EntrySize returns the bytes per tile of the kind.
func (k Kind) EntrySize() int {
	if k == KindLight {
		return 1
	}
	return 4
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindVis:
		return "VisMap"
	case KindFov:
		return "FovMap"
	case KindReveal:
		return "RevealMap"
	case KindLight:
		return "LightMap"
	default:
		return "Unknown"
	}
}

// Grid describes a buffer in an arena.Table as a width×height tile grid
// with a clip rectangle. Grid is a plain value: the engine resolves the
// handle on every call and keeps nothing.
type Grid struct {
	Handle arena.Handle
	Width  int
	Height int
	Clip   Rect
}

// NewGrid describes a width×height grid clipped to its full extent.
func NewGrid(h arena.Handle, width, height int) Grid {
	return Grid{Handle: h, Width: width, Height: height, Clip: NewRect(0, 0, width, height)}
}

// WithClip returns a copy of g restricted to r.
func (g Grid) WithClip(r Rect) Grid {
	g.Clip = r
	return g
}

// Alloc allocates a zeroed width×height grid of kind k in table.
func Alloc(table *arena.Table, k Kind, width, height int) Grid {
	return NewGrid(table.Alloc(max(width, 0)*max(height, 0)*k.EntrySize()), width, height)
}
