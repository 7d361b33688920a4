package tilevis

import "github.com/gogpu/tilevis/internal/region"

// ClearBits clears mask on every tile in the clip of a word grid
// (VisMap, FovMap or RevealMap).
func (e *Engine) ClearBits(g Grid, mask uint32) {
	if v, ok := e.words("ClearBits", "grid", g); ok {
		region.Clear(v, mask)
	}
}

// SetBits sets mask on every tile in the clip of a word grid.
func (e *Engine) SetBits(g Grid, mask uint32) {
	if v, ok := e.words("SetBits", "grid", g); ok {
		region.Set(v, mask)
	}
}

// InvertBits toggles mask on every tile in the clip of a word grid.
func (e *Engine) InvertBits(g Grid, mask uint32) {
	if v, ok := e.words("InvertBits", "grid", g); ok {
		region.Invert(v, mask)
	}
}

// StampCircle sets mask on every clip tile whose centre lies within radius
// light units of (cx, cy), given in light units. Use it for shadow and
// perspective masks on a VisMap.
func (e *Engine) StampCircle(g Grid, mask uint32, cx, cy, radius int) {
	if v, ok := e.words("StampCircle", "grid", g); ok {
		region.Circle(v, mask, cx, cy, radius)
	}
}

// ApplyRadialLight adds light to the VisMap accumulator around (cx, cy).
//
// Tiles within outer light units receive intensity scaled linearly from
// full at inner to zero at outer. If inner >= outer, every such tile
// receives the full intensity. Lights stack: the contribution is added, and
// the 24-bit accumulator wraps rather than saturates.
func (e *Engine) ApplyRadialLight(visMap Grid, cx, cy, inner, outer int, intensity int32) {
	if v, ok := e.words("ApplyRadialLight", "vis", visMap); ok {
		region.Radial(v, cx, cy, inner, outer, intensity)
	}
}
