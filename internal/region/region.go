// Package region applies bit masks and light to rectangular and circular
// areas of a tile grid.
//
// Rectangular operations cover the view's clip. Circular operations work in
// light units, where one tile spans UnitsPerTile units and a tile's centre
// sits at x*UnitsPerTile + UnitsPerTile/2.
package region

import "github.com/gogpu/tilevis/internal/grid"

// UnitsPerTile is the number of light units across one tile.
const UnitsPerTile = 256

// Clear applies &^ mask to every tile in the clip.
func Clear(v grid.View[uint32], mask uint32) {
	data := v.Data()
	v.Spans(func(start, end int) {
		for i := start; i < end; i++ {
			data[i] &^= mask
		}
	})
}

// Set applies | mask to every tile in the clip.
func Set(v grid.View[uint32], mask uint32) {
	data := v.Data()
	v.Spans(func(start, end int) {
		for i := start; i < end; i++ {
			data[i] |= mask
		}
	})
}

// Invert applies ^ mask to every tile in the clip.
func Invert(v grid.View[uint32], mask uint32) {
	data := v.Data()
	v.Spans(func(start, end int) {
		for i := start; i < end; i++ {
			data[i] ^= mask
		}
	})
}

// TileCenter returns the light-unit coordinate of the centre of tile t.
func TileCenter(t int) int {
	return t*UnitsPerTile + UnitsPerTile/2
}
