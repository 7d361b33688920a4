// Package demo is a small dungeon scene driven through the tilevis step
// sequence. The command-line hosts use it to show the engine at work.
package demo

import (
	"errors"
	"image"
	"log/slog"

	"github.com/gogpu/tilevis"
	"github.com/gogpu/tilevis/arena"
)

// Layout errors.
var (
	ErrEmptyLayout    = errors.New("demo: empty layout")
	ErrNoViewer       = errors.New("demo: layout has no viewer")
	ErrTooManyViewers = errors.New("demo: more than 32 viewers")
)

// Point is a tile position.
type Point struct{ X, Y int }

// Viewer sees from its tile on its own FOV channel and may carry a light.
type Viewer struct {
	Point
	Channel   uint32
	Intensity int32 // carried light, 0 for none
	Radius    int   // carried light radius in tiles
}

// Torch is a fixed radial light. Radii are in tiles.
type Torch struct {
	Point
	Inner, Outer int
	Intensity    int32
}

// Shadow is a painted circle of darkness, radius in tiles.
type Shadow struct {
	Point
	Radius int
}

// Scene owns the four grids of one map and the entities lighting it.
type Scene struct {
	table *arena.Table
	eng   *tilevis.Engine

	width, height           int
	vis, fov, reveal, light tilevis.Grid

	Viewers []Viewer
	Torches []Torch
	Shadows []Shadow
	Beacons []Point

	// PerspectiveRadius limits drawing to circles around the viewers, in
	// tiles. Zero draws the whole map.
	PerspectiveRadius int

	// Approach is the per-step brightness convergence factor.
	Approach float64

	steps int
}

// Default entity parameters for Parse.
const (
	ViewerIntensity = 18000
	ViewerRadius    = 5
	TorchIntensity  = 25500
	TorchRadius     = 7
	ShadowRadius    = 1
)

// Parse builds a scene from rows of text:
//
//	#  wall
//	@  viewer carrying a light
//	*  torch
//	~  painted shadow
//	!  beacon, always drawn at full brightness
//
// Any other rune is floor. Short rows are padded with floor.
func Parse(rows []string, opts ...tilevis.Option) (*Scene, error) {
	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}
	if width == 0 {
		return nil, ErrEmptyLayout
	}

	table := arena.New(4)
	s := New(table, width, len(rows), opts...)

	for y, row := range rows {
		for x, ch := range []rune(row) {
			p := Point{x, y}
			switch ch {
			case '#':
				s.SetWall(x, y, true)
			case '@':
				if len(s.Viewers) == 32 {
					s.Close()
					return nil, ErrTooManyViewers
				}
				s.Viewers = append(s.Viewers, Viewer{
					Point:     p,
					Channel:   1 << len(s.Viewers),
					Intensity: ViewerIntensity,
					Radius:    ViewerRadius,
				})
			case '*':
				s.Torches = append(s.Torches, Torch{Point: p, Outer: TorchRadius, Intensity: TorchIntensity})
			case '~':
				s.Shadows = append(s.Shadows, Shadow{Point: p, Radius: ShadowRadius})
			case '!':
				s.Beacons = append(s.Beacons, p)
			}
		}
	}
	if len(s.Viewers) == 0 {
		s.Close()
		return nil, ErrNoViewer
	}
	return s, nil
}

// New creates an empty width×height scene with grids allocated in table.
func New(table *arena.Table, width, height int, opts ...tilevis.Option) *Scene {
	s := &Scene{
		table:    table,
		eng:      tilevis.New(table, opts...),
		width:    width,
		height:   height,
		vis:      tilevis.Alloc(table, tilevis.KindVis, width, height),
		fov:      tilevis.Alloc(table, tilevis.KindFov, width, height),
		reveal:   tilevis.Alloc(table, tilevis.KindReveal, width, height),
		light:    tilevis.Alloc(table, tilevis.KindLight, width, height),
		Approach: 0.35,
	}
	s.eng.SetBits(s.vis, tilevis.FlagValid)
	return s
}

// Close releases the scene's grids.
func (s *Scene) Close() {
	for _, g := range []tilevis.Grid{s.vis, s.fov, s.reveal, s.light} {
		_ = s.table.Release(g.Handle)
	}
}

// Size returns the map size in tiles.
func (s *Scene) Size() (width, height int) { return s.width, s.height }

// Steps returns the number of completed steps.
func (s *Scene) Steps() int { return s.steps }

// Engine returns the engine driving the scene.
func (s *Scene) Engine() *tilevis.Engine { return s.eng }

func tile(x, y int) tilevis.Rect { return tilevis.NewRect(x, y, 1, 1) }

// SetWall makes (x, y) opaque or clear.
func (s *Scene) SetWall(x, y int, wall bool) {
	if !s.inside(x, y) {
		return
	}
	if wall {
		s.eng.SetBits(s.vis.WithClip(tile(x, y)), tilevis.FlagOpaque)
	} else {
		s.eng.ClearBits(s.vis.WithClip(tile(x, y)), tilevis.FlagOpaque)
	}
}

// ToggleWall flips the wall at (x, y).
func (s *Scene) ToggleWall(x, y int) {
	if s.inside(x, y) {
		s.eng.InvertBits(s.vis.WithClip(tile(x, y)), tilevis.FlagOpaque)
	}
}

// Wall reports whether (x, y) is a wall. Tiles off the map are walls.
func (s *Scene) Wall(x, y int) bool {
	c, ok := s.eng.Cell(s.vis, x, y)
	return !ok || c.Opaque()
}

func (s *Scene) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Move steps viewer i by (dx, dy) unless a wall is in the way.
func (s *Scene) Move(i, dx, dy int) bool {
	if i < 0 || i >= len(s.Viewers) {
		return false
	}
	v := &s.Viewers[i]
	nx, ny := v.X+dx, v.Y+dy
	if s.Wall(nx, ny) {
		return false
	}
	v.X, v.Y = nx, ny
	return true
}

func center(p Point) (int, int) {
	return tilevis.TileCenter(p.X), tilevis.TileCenter(p.Y)
}

// Step runs one frame: clear and cast every viewer's FOV, reveal, repaint
// shadow and perspective masks, re-apply lights and converge the light map.
//
// Reveal runs before this step's masks and lights are painted, so it sees
// the light and shadow of the previous step. A tile lit for the first time
// is revealed on the following step.
func (s *Scene) Step() {
	const unit = tilevis.LightUnitsPerTile
	e := s.eng

	e.ClearBits(s.fov, ^uint32(0))
	for _, v := range s.Viewers {
		e.CastFOV(s.vis, s.fov, v.Channel, v.X, v.Y)
	}
	e.Reveal(s.vis, s.fov, s.reveal)

	e.ClearBits(s.vis, tilevis.LightMask|tilevis.FlagShadow|tilevis.FlagPerspective)
	for _, sh := range s.Shadows {
		cx, cy := center(sh.Point)
		e.StampCircle(s.vis, tilevis.FlagShadow, cx, cy, sh.Radius*unit)
	}
	if s.PerspectiveRadius <= 0 {
		e.SetBits(s.vis, tilevis.FlagPerspectiveOcclude)
	} else {
		for _, v := range s.Viewers {
			cx, cy := center(v.Point)
			e.StampCircle(s.vis, tilevis.FlagPerspectiveOcclude, cx, cy, s.PerspectiveRadius*unit)
		}
	}
	for _, b := range s.Beacons {
		cx, cy := center(b)
		e.StampCircle(s.vis, tilevis.FlagPerspectiveIlluminate, cx, cy, 0)
	}

	for _, t := range s.Torches {
		cx, cy := center(t.Point)
		e.ApplyRadialLight(s.vis, cx, cy, t.Inner*unit, t.Outer*unit, t.Intensity)
	}
	for _, v := range s.Viewers {
		if v.Intensity != 0 {
			cx, cy := center(v.Point)
			e.ApplyRadialLight(s.vis, cx, cy, 0, v.Radius*unit, v.Intensity)
		}
	}

	e.UpdateLightMap(s.vis, s.fov, s.reveal, s.light, s.Approach)
	s.steps++

	tilevis.Logger().Debug("demo: step", "step", s.steps, "viewers", len(s.Viewers), "torches", len(s.Torches))
}

// Brightness returns the displayed brightness of (x, y).
func (s *Scene) Brightness(x, y int) uint8 {
	b, _ := s.eng.Brightness(s.light, x, y)
	return b
}

// Visible reports whether any viewer sees (x, y) this step.
func (s *Scene) Visible(x, y int) bool {
	w, _ := s.eng.Word(s.fov, x, y)
	return w != 0
}

// Revealed returns the number of tiles any viewer has revealed.
func (s *Scene) Revealed() int {
	n := 0
	for y := range s.height {
		for x := range s.width {
			if w, _ := s.eng.Word(s.reveal, x, y); w != 0 {
				n++
			}
		}
	}
	return n
}

// Snapshot copies the light map into a grayscale image, one pixel per tile.
func (s *Scene) Snapshot() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.width, s.height))
	b, err := s.table.Bytes(s.light.Handle)
	if err != nil {
		tilevis.Logger().Warn("demo: snapshot", "err", err)
		return img
	}
	copy(img.Pix, b)
	return img
}

// LogValue summarises the scene for structured logs.
func (s *Scene) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("width", s.width),
		slog.Int("height", s.height),
		slog.Int("steps", s.steps),
		slog.Int("revealed", s.Revealed()),
	)
}
