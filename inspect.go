package tilevis

// Word returns the raw entry of a word grid at (x, y).
// It reports false if the grid is inert or (x, y) lies outside it.
func (e *Engine) Word(g Grid, x, y int) (uint32, bool) {
	v, ok := e.words("Word", "grid", g)
	if !ok || !v.InBounds(x, y) {
		return 0, false
	}
	return v.At(x, y), true
}

// Cell returns the decoded VisMap entry at (x, y).
func (e *Engine) Cell(visMap Grid, x, y int) (Cell, bool) {
	w, ok := e.Word(visMap, x, y)
	return Cell(w), ok
}

// Brightness returns the LightMap value at (x, y).
func (e *Engine) Brightness(light Grid, x, y int) (uint8, bool) {
	v, ok := e.bytes("Brightness", "light", light)
	if !ok || !v.InBounds(x, y) {
		return 0, false
	}
	return v.At(x, y), true
}
