// Package lighting turns accumulated light and visibility into persistent
// fog-of-war and displayed brightness.
//
// All functions iterate the clip of the grid they write (RevealMap for
// Reveal, LightMap for Converge) and read the other grids at the same flat
// index, so every grid passed to one call must share width and height.
package lighting
