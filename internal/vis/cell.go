// Package vis defines the packed layout of one VisMap tile.
package vis

import "github.com/gogpu/tilevis/internal/bitfield"

// Word layout of a VisMap tile.
var (
	LightField                 = bitfield.MustField(0, 24)
	OpaqueField                = bitfield.Flag(24)
	ValidField                 = bitfield.Flag(25)
	ShadowField                = bitfield.Flag(26)
	PerspectiveRevealField     = bitfield.Flag(27)
	PerspectiveOccludeField    = bitfield.Flag(28)
	PerspectiveIlluminateField = bitfield.Flag(29)
)

// Flag masks for SetBits/ClearBits style operations.
const (
	FlagOpaque                uint32 = 1 << 24
	FlagValid                 uint32 = 1 << 25
	FlagShadow                uint32 = 1 << 26
	FlagPerspectiveReveal     uint32 = 1 << 27
	FlagPerspectiveOcclude    uint32 = 1 << 28
	FlagPerspectiveIlluminate uint32 = 1 << 29

	// LightMask covers the signed light accumulator.
	LightMask uint32 = 1<<24 - 1
)

// Cell is one VisMap word.
type Cell uint32

// Light returns the signed light accumulator.
func (c Cell) Light() int32 { return LightField.GetSigned(uint32(c)) }

// WithLight returns c with the accumulator replaced, masked to 24 bits.
func (c Cell) WithLight(v int32) Cell { return Cell(LightField.SetSigned(uint32(c), v)) }

// AddLight adds delta to the accumulator. Overflow wraps within 24 bits.
func (c Cell) AddLight(delta int32) Cell { return c.WithLight(c.Light() + delta) }

// Opaque reports whether the tile blocks line of sight.
func (c Cell) Opaque() bool { return uint32(c)&FlagOpaque != 0 }

// Valid reports the reserved valid flag.
func (c Cell) Valid() bool { return uint32(c)&FlagValid != 0 }

// Shadow reports manually painted darkness.
func (c Cell) Shadow() bool { return uint32(c)&FlagShadow != 0 }

// PerspectiveReveal reports the perspective reveal flag.
func (c Cell) PerspectiveReveal() bool { return uint32(c)&FlagPerspectiveReveal != 0 }

// PerspectiveOcclude reports the perspective occlude flag. A tile without it
// is dark regardless of light.
func (c Cell) PerspectiveOcclude() bool { return uint32(c)&FlagPerspectiveOcclude != 0 }

// PerspectiveIlluminate reports the forced full-brightness flag.
func (c Cell) PerspectiveIlluminate() bool { return uint32(c)&FlagPerspectiveIlluminate != 0 }
