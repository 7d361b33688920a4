package tilevis

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/tilevis/arena"
	"github.com/gogpu/tilevis/internal/grid"
	"github.com/gogpu/tilevis/internal/lighting"
)

// Engine runs visibility, FOV and lighting operations over grids held in a
// host-owned arena.Table.
//
// Every operation validates and resolves its grids, transforms them, and
// returns. A grid that cannot be used (stale handle, bad shape or clip,
// size mismatch) turns the call into a no-op after a warning is logged;
// nothing is returned to the caller.
//
// Thread safety: Engine holds no per-grid state, but operations write
// caller buffers without locking. Calls touching the same grid must not run
// concurrently.
type Engine struct {
	table  *arena.Table
	params lighting.Params
	logger *slog.Logger
}

// New creates an Engine resolving grid handles in table.
// A nil table is replaced by an empty one, so every handle is stale.
func New(table *arena.Table, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{table: table, logger: o.logger}
	if e.table == nil {
		e.table = arena.New(0)
	}
	if !o.tuning.valid() {
		e.log().Warn("tilevis: invalid tuning, using defaults",
			"light_ratio", o.tuning.LightRatio,
			"revealed_brightness", o.tuning.RevealedBrightness,
			"shadowed_penalty", o.tuning.ShadowedPenalty)
		o.tuning = DefaultTuning()
	}
	e.params = o.tuning.params()
	return e
}

// Tuning returns the lighting constants in effect.
func (e *Engine) Tuning() Tuning {
	return Tuning{
		LightRatio:         e.params.Ratio,
		RevealThreshold:    e.params.RevealThreshold,
		RevealedBrightness: e.params.RevealedBrightness,
		ShadowedPenalty:    e.params.ShadowedPenalty,
	}
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return Logger()
}

// inert reports a grid that turns the operation into a no-op.
func (e *Engine) inert(op, role string, g Grid, err error) {
	err = fmt.Errorf("tilevis: %s %s: %w", op, role, err)
	e.log().Warn("tilevis: inert grid",
		"op", op,
		"grid", role,
		"handle", g.Handle,
		"width", g.Width,
		"height", g.Height,
		"clip", g.Clip,
		"err", err)
}

// words resolves a 4-byte-per-tile grid.
func (e *Engine) words(op, role string, g Grid) (grid.View[uint32], bool) {
	b, err := e.table.Bytes(g.Handle)
	if err != nil {
		e.inert(op, role, g, err)
		return grid.View[uint32]{}, false
	}
	v, err := grid.Words(b, g.Width, g.Height, g.Clip)
	if err != nil {
		e.inert(op, role, g, err)
		return grid.View[uint32]{}, false
	}
	return v, true
}

// bytes resolves a 1-byte-per-tile grid.
func (e *Engine) bytes(op, role string, g Grid) (grid.View[uint8], bool) {
	b, err := e.table.Bytes(g.Handle)
	if err != nil {
		e.inert(op, role, g, err)
		return grid.View[uint8]{}, false
	}
	v, err := grid.Bytes(b, g.Width, g.Height, g.Clip)
	if err != nil {
		e.inert(op, role, g, err)
		return grid.View[uint8]{}, false
	}
	return v, true
}

// operand is a grid taking part in a multi-grid operation, with the result
// of checking its resolved view against the reference shape.
type operand struct {
	role string
	grid Grid
	same bool
}

// sameShape reports the first operand, in argument order, whose view is
// not width×height.
func (e *Engine) sameShape(op string, width, height int, operands ...operand) bool {
	for _, o := range operands {
		if !o.same {
			e.inert(op, o.role, o.grid, fmt.Errorf("%w: want %dx%d", grid.ErrDimensionMismatch, width, height))
			return false
		}
	}
	return true
}
