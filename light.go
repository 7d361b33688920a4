package tilevis

import "github.com/gogpu/tilevis/internal/lighting"

// Reveal records fog-of-war: for every tile in the RevealMap clip whose
// accumulated light reaches the reveal threshold and which is not painted
// as shadow, the current FovMap bits are ORed into the RevealMap. The
// engine never clears RevealMap bits.
func (e *Engine) Reveal(visMap, fov, reveal Grid) {
	const op = "Reveal"
	vv, ok := e.words(op, "vis", visMap)
	if !ok {
		return
	}
	fv, ok := e.words(op, "fov", fov)
	if !ok {
		return
	}
	rv, ok := e.words(op, "reveal", reveal)
	if !ok {
		return
	}
	w, h := rv.Width(), rv.Height()
	if !e.sameShape(op, w, h,
		operand{"vis", visMap, vv.SameShape(w, h)},
		operand{"fov", fov, fv.SameShape(w, h)}) {
		return
	}
	lighting.Reveal(vv, fv, rv, e.params.RevealThreshold)
}

// UpdateLightMap moves every LightMap tile in its clip toward its target
// brightness by approach, 0 leaving it unchanged and 1 snapping to the
// target.
//
// The target is the VisMap light, zeroed outside the FOV or under shadow,
// scaled to 0-255, raised to the revealed floor for revealed tiles, zeroed
// without the perspective-occlude flag, and forced to 255 by the
// perspective-illuminate flag, in that order.
func (e *Engine) UpdateLightMap(visMap, fov, reveal, light Grid, approach float64) {
	const op = "UpdateLightMap"
	vv, ok := e.words(op, "vis", visMap)
	if !ok {
		return
	}
	fv, ok := e.words(op, "fov", fov)
	if !ok {
		return
	}
	rv, ok := e.words(op, "reveal", reveal)
	if !ok {
		return
	}
	lv, ok := e.bytes(op, "light", light)
	if !ok {
		return
	}
	w, h := lv.Width(), lv.Height()
	if !e.sameShape(op, w, h,
		operand{"vis", visMap, vv.SameShape(w, h)},
		operand{"fov", fov, fv.SameShape(w, h)},
		operand{"reveal", reveal, rv.SameShape(w, h)}) {
		return
	}
	lighting.Converge(vv, fv, rv, lv, e.params, approach)
}
