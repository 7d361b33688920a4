package lighting

import (
	"github.com/gogpu/tilevis/internal/grid"
	"github.com/gogpu/tilevis/internal/vis"
)

// Reveal ORs the current FOV bits into the RevealMap for every tile in the
// RevealMap clip that is lit to at least threshold and not painted as
// shadow. Bits are never cleared.
func Reveal(visMap, fov, reveal grid.View[uint32], threshold int32) {
	vd, fd, rd := visMap.Data(), fov.Data(), reveal.Data()
	reveal.Spans(func(start, end int) {
		for i := start; i < end; i++ {
			c := vis.Cell(vd[i])
			if c.Light() >= threshold && !c.Shadow() {
				rd[i] |= fd[i]
			}
		}
	})
}
