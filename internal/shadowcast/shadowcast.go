// Package shadowcast computes field of view by recursive shadowcasting.
//
// Each of the eight octants is scanned outward one depth at a time. The
// angular extent of an octant (slope 0 along the primary axis up to slope 1
// on the diagonal) is divided into 64 slots held in a uint64; a set slot is
// a direction that is still unobstructed. A tile is visible when its wedge
// overlaps a set slot, and an opaque tile removes its wedge from the slots
// of every deeper row.
package shadowcast

import (
	"github.com/gogpu/tilevis/internal/grid"
	"github.com/gogpu/tilevis/internal/vis"
)

// Slots is the angular resolution of one octant.
const Slots = 64

// allSlots is the initial, fully open slope mask.
const allSlots = ^uint64(0)

// diagonalSlot is the slot touching slope 1.
const diagonalSlot = uint64(1) << (Slots - 1)

// octant maps (depth, p) to a grid offset: depth steps along (dx, dy) and
// p steps along the perpendicular (px, py).
type octant struct {
	dx, dy int
	px, py int
}

var octants = [8]octant{
	{1, 0, 0, 1},
	{1, 0, 0, -1},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, 1, 1, 0},
	{0, 1, -1, 0},
	{0, -1, 1, 0},
	{0, -1, -1, 0},
}

// caster holds the per-call inputs shared by all octants. It carries no
// scan state; the slope mask travels through scan's arguments.
type caster struct {
	vis    grid.View[uint32]
	fov    grid.View[uint32]
	mask   uint32
	ox, oy int
}

// Cast marks mask in fov on every tile visible from (ox, oy).
//
// Opacity is read from vis; tiles outside the vis clip count as opaque,
// which bounds the scan. Tiles are only marked inside the fov clip. An origin
// outside the fov clip leaves fov untouched.
func Cast(visMap, fov grid.View[uint32], mask uint32, ox, oy int) {
	if !fov.ValidCoord(ox, oy) {
		return
	}
	fov.Or(ox, oy, mask)

	c := caster{vis: visMap, fov: fov, mask: mask, ox: ox, oy: oy}
	for _, o := range octants {
		c.scan(o, 1, allSlots)
	}
}

// opaque reports whether (x, y) blocks sight.
func (c *caster) opaque(x, y int) bool {
	if !c.vis.ValidCoord(x, y) {
		return true
	}
	return vis.Cell(c.vis.At(x, y)).Opaque()
}

// scan processes one depth of an octant and recurses into the next with the
// slots that survived. It returns when every slot is blocked.
func (c *caster) scan(o octant, depth int, slopes uint64) {
	if slopes == 0 {
		return
	}
	var blocked uint64
	for p := 0; p <= depth; p++ {
		x := c.ox + o.dx*depth + o.px*p
		y := c.oy + o.dy*depth + o.py*p
		w := wedge(depth, p)

		// A wall just past the diagonal closes the diagonal slot so sight
		// cannot slip between two corner-touching walls.
		if p == depth && c.opaque(x-o.dx, y-o.dy) {
			slopes &^= diagonalSlot
		}
		if slopes&w != 0 {
			c.fov.Or(x, y, c.mask)
		}
		if c.opaque(x, y) {
			blocked |= w
		}
	}
	c.scan(o, depth+1, slopes&^blocked)
}

// wedge returns the slots subtended by the tile at (depth, p): from the
// slope of its near-low corner (p-½)/(depth+½) to its far-high corner
// (p+½)/(depth-½), in 64ths, clamped to the octant.
func wedge(depth, p int) uint64 {
	lo := floorDiv(Slots*(2*p-1), 2*depth+1)
	hi := ceilDiv(Slots*(2*p+1), 2*depth-1)
	lo = max(lo, 0)
	hi = min(hi, Slots)
	if hi <= lo {
		return 0
	}
	return span(hi) &^ span(lo)
}

// span returns a mask of the low n slots.
func span(n int) uint64 {
	if n >= Slots {
		return allSlots
	}
	return uint64(1)<<uint(n) - 1
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
