package tilevis

import (
	"github.com/gogpu/tilevis/internal/region"
	"github.com/gogpu/tilevis/internal/shadowcast"
)

// CastFOV marks mask in fov on every tile visible from tile (ox, oy),
// using the opaque flag of visMap. Tiles outside the VisMap clip block
// sight; tiles outside the FovMap clip are never marked. An origin outside
// the FovMap clip makes the call a no-op.
//
// Each bit of mask is an independent channel, so several viewers can share
// one FovMap.
func (e *Engine) CastFOV(visMap, fov Grid, mask uint32, ox, oy int) {
	const op = "CastFOV"
	vv, ok := e.words(op, "vis", visMap)
	if !ok {
		return
	}
	fv, ok := e.words(op, "fov", fov)
	if !ok {
		return
	}
	w, h := vv.Width(), vv.Height()
	if !e.sameShape(op, w, h,
		operand{"fov", fov, fv.SameShape(w, h)}) {
		return
	}
	if !fv.ValidCoord(ox, oy) {
		e.log().Debug("tilevis: fov origin outside clip", "x", ox, "y", oy, "clip", fov.Clip)
		return
	}
	shadowcast.Cast(vv, fv, mask, ox, oy)
}

// AddCircleFOV marks mask in fov on every clip tile whose centre lies
// within radius light units of (cx, cy), ignoring walls.
func (e *Engine) AddCircleFOV(fov Grid, mask uint32, cx, cy, radius int) {
	if v, ok := e.words("AddCircleFOV", "fov", fov); ok {
		region.Circle(v, mask, cx, cy, radius)
	}
}
