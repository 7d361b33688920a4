package region

import (
	"math/bits"

	"github.com/gogpu/tilevis/internal/grid"
	"github.com/gogpu/tilevis/internal/vis"
)

// eachInRadius calls fn for every clip tile whose centre lies within radius
// light units of (cx, cy), passing the squared distance.
//
// Only the square bounding box of the circle is visited. The box is a pure
// pruning step: the distance test alone decides which tiles match.
func eachInRadius[T grid.Element](v grid.View[T], cx, cy, radius int, fn func(x, y int, d2 int64)) {
	if radius < 0 || v.Empty() {
		return
	}
	box := grid.Rect{
		X: floorDiv(cx-radius, UnitsPerTile),
		Y: floorDiv(cy-radius, UnitsPerTile),
	}
	box.W = floorDiv(cx+radius, UnitsPerTile) - box.X + 1
	box.H = floorDiv(cy+radius, UnitsPerTile) - box.Y + 1
	box = box.Intersect(v.Clip())

	r2 := int64(radius) * int64(radius)
	for y := box.Y; y < box.Bottom(); y++ {
		dy := int64(TileCenter(y) - cy)
		for x := box.X; x < box.Right(); x++ {
			dx := int64(TileCenter(x) - cx)
			if d2 := dx*dx + dy*dy; d2 <= r2 {
				fn(x, y, d2)
			}
		}
	}
}

// Circle sets mask on every tile whose centre lies within radius light
// units of (cx, cy).
func Circle(v grid.View[uint32], mask uint32, cx, cy, radius int) {
	data := v.Data()
	eachInRadius(v, cx, cy, radius, func(x, y int, _ int64) {
		data[v.Index(x, y)] |= mask
	})
}

// Radial adds a light contribution to the VisMap accumulator of every tile
// within outer light units of (cx, cy).
//
// When inner >= outer every such tile receives the full intensity.
// Otherwise the contribution falls linearly from intensity at inner to zero
// at outer, with the distance clamped into [inner, outer]. Contributions
// accumulate; overflow wraps within the 24-bit field.
func Radial(v grid.View[uint32], cx, cy, inner, outer int, intensity int32) {
	data := v.Data()
	flat := inner >= outer
	eachInRadius(v, cx, cy, outer, func(x, y int, d2 int64) {
		add := intensity
		if !flat {
			dist := min(max(isqrt(d2), int64(inner)), int64(outer))
			// #nosec G115 -- |result| <= |intensity|
			add = int32(int64(intensity) * (int64(outer) - dist) / int64(outer-inner))
		}
		i := v.Index(x, y)
		data[i] = uint32(vis.Cell(data[i]).AddLight(add))
	})
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int64) int64 {
	if n < 2 {
		return n
	}
	// #nosec G115 -- n > 0
	x := int64(1) << ((bits.Len64(uint64(n)) + 1) / 2)
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}
