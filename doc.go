// Package tilevis is a tile-grid visibility, field-of-view and lighting
// engine.
//
// # Overview
//
// tilevis maintains four parallel grids that live in host-owned buffers:
//
//   - VisMap: per tile, a 24-bit signed light accumulator plus the opaque,
//     valid, shadow and three perspective flags
//   - FovMap: per tile, a bitmask of the viewer channels that see it now
//   - RevealMap: per tile, a bitmask of the channels that have ever seen it
//   - LightMap: per tile, the displayed 0-255 brightness
//
// It computes field of view by recursive shadowcasting, adds radial light
// with linear falloff, records fog-of-war, and moves displayed brightness
// toward its target a step at a time.
//
// # Quick Start
//
//	table := arena.New(4)
//	eng := tilevis.New(table)
//
//	vm := tilevis.Alloc(table, tilevis.KindVis, 64, 48)
//	fm := tilevis.Alloc(table, tilevis.KindFov, 64, 48)
//	rm := tilevis.Alloc(table, tilevis.KindReveal, 64, 48)
//	lm := tilevis.Alloc(table, tilevis.KindLight, 64, 48)
//
//	// Each simulation step:
//	eng.ClearBits(fm, ^uint32(0))
//	eng.CastFOV(vm, fm, 1, px, py)
//	eng.Reveal(vm, fm, rm)
//	eng.ClearBits(vm, tilevis.LightMask|tilevis.FlagShadow)
//	eng.ApplyRadialLight(vm, tilevis.TileCenter(px), tilevis.TileCenter(py), 0, 6*tilevis.LightUnitsPerTile, 25500)
//	eng.UpdateLightMap(vm, fm, rm, lm, 0.25)
//
// # Step order
//
// The engine keeps no state between calls; the host drives each step:
// clear FOV, cast FOV from each viewer, reveal, clear and stamp shadow and
// perspective masks, apply lights, update the light map.
//
// Reveal therefore reads the light and shadow left in the VisMap by the
// previous step, and a newly lit tile joins the RevealMap one step later.
// The light accumulator is additive, so hosts clear it (ClearBits with
// LightMask) before re-applying lights.
//
// # Coordinates
//
// Tiles are addressed by integer (x, y), origin top-left. Circles and
// lights use light units: LightUnitsPerTile units per tile, with the centre
// of tile t at TileCenter(t).
//
// # Errors
//
// Operations return nothing. A grid whose handle is stale, whose shape or
// clip is invalid, or whose buffer length does not match makes the call a
// no-op and is reported through the logger (see SetLogger). Zero-sized
// grids and empty clips are silent no-ops.
package tilevis
