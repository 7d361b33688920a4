package lighting

import (
	"math"

	"github.com/gogpu/tilevis/internal/grid"
	"github.com/gogpu/tilevis/internal/vis"
)

// Target returns the brightness a tile is converging toward.
//
// The stages run in a fixed order and each may only relax the result of
// the earlier ones in its own way: FOV gate, shadow gate, normalisation,
// reveal floor, perspective-occlude gate, perspective-illuminate override.
func Target(c vis.Cell, fovBits, revealBits uint32, p Params) int32 {
	target := c.Light()
	if fovBits == 0 {
		target = 0
	}
	if c.Shadow() {
		target = 0
	}
	target /= p.Ratio

	// Walls are never drawn as lit, so shadow paint does not dim them.
	shadowed := c.Shadow() && !c.Opaque()
	if c.PerspectiveReveal() || revealBits != 0 {
		floor := p.RevealedBrightness
		if shadowed {
			floor -= p.ShadowedPenalty
		}
		target = max(target, floor, 0)
	}

	if !c.PerspectiveOcclude() {
		target = 0
	}
	if c.PerspectiveIlluminate() {
		target = MaxBrightness
	}
	return target
}

// Approach moves current toward target by factor in [0, 1] and clamps the
// result to a brightness byte. Any positive factor moves at least one
// level, so repeated steps always reach the target.
func Approach(current uint8, target int32, factor float64) uint8 {
	if math.IsNaN(factor) || factor <= 0 {
		return current
	}
	factor = min(factor, 1)
	cur := float64(current)
	diff := float64(target) - cur
	step := math.Round(diff * factor)
	if step == 0 && diff != 0 {
		step = math.Copysign(1, diff)
	}
	return uint8(min(max(cur+step, 0), MaxBrightness))
}

// Converge updates every LightMap tile in its clip one step toward its
// Target. A factor of 0 leaves the map untouched; 1 snaps to the target.
func Converge(visMap, fov, reveal grid.View[uint32], light grid.View[uint8], p Params, factor float64) {
	vd, fd, rd, ld := visMap.Data(), fov.Data(), reveal.Data(), light.Data()
	light.Spans(func(start, end int) {
		for i := start; i < end; i++ {
			target := Target(vis.Cell(vd[i]), fd[i], rd[i], p)
			ld[i] = Approach(ld[i], target, factor)
		}
	})
}
