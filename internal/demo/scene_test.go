package demo

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/tilevis"
)

func mustParse(t *testing.T, rows ...string) *Scene {
	t.Helper()
	s, err := Parse(rows)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"nil", nil, ErrEmptyLayout},
		{"blank rows", []string{"", ""}, ErrEmptyLayout},
		{"no viewer", []string{"#.#"}, ErrNoViewer},
		{"too many viewers", []string{strings.Repeat("@", 33)}, ErrTooManyViewers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rows)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseEntities(t *testing.T) {
	s := mustParse(t,
		"#####",
		"#@*~#",
		"#@!",
	)
	if w, h := s.Size(); w != 5 || h != 3 {
		t.Fatalf("Size() = %dx%d, want 5x3", w, h)
	}
	if len(s.Viewers) != 2 || s.Viewers[0].Channel != 1 || s.Viewers[1].Channel != 2 {
		t.Errorf("viewers = %+v", s.Viewers)
	}
	if len(s.Torches) != 1 || s.Torches[0].Point != (Point{2, 1}) {
		t.Errorf("torches = %+v", s.Torches)
	}
	if len(s.Shadows) != 1 || len(s.Beacons) != 1 {
		t.Errorf("shadows = %+v beacons = %+v", s.Shadows, s.Beacons)
	}
	if !s.Wall(0, 0) || s.Wall(1, 1) || s.Wall(4, 2) {
		t.Error("walls not parsed, or padding not floor")
	}
	if !s.Wall(-1, 0) || !s.Wall(5, 0) {
		t.Error("off-map tiles must read as walls")
	}
}

func TestStepLightsViewer(t *testing.T) {
	s := mustParse(t,
		"#######",
		"#.....#",
		"#..@..#",
		"#.....#",
		"#######",
	)
	s.Approach = 1
	s.Step()

	if s.Steps() != 1 {
		t.Errorf("Steps() = %d", s.Steps())
	}
	if got := s.Brightness(3, 2); got != ViewerIntensity/100 {
		t.Errorf("viewer tile = %d, want %d", got, ViewerIntensity/100)
	}
	if !s.Visible(1, 1) || !s.Visible(0, 2) {
		t.Error("room floor and side wall should be visible")
	}
	if n := s.Revealed(); n != 0 {
		t.Errorf("revealed %d tiles before any light was applied", n)
	}
	s.Step()
	if s.Revealed() == 0 {
		t.Error("nothing revealed on the second step")
	}
}

func TestStepRevealReadsPreviousLight(t *testing.T) {
	s := mustParse(t,
		"############",
		"#@.........#",
		"############",
	)
	s.Approach = 1
	s.Step()
	s.Step()
	revealed := s.Revealed()

	// The far end is out of the viewer's light. A torch placed there lights
	// it this step, but reveal runs before the torch is applied.
	s.Torches = append(s.Torches, Torch{Point: Point{9, 1}, Outer: 1, Intensity: TorchIntensity})
	s.Viewers[0].Intensity = 0
	s.Step()
	if got := s.Revealed(); got != revealed {
		t.Errorf("Revealed() = %d after placing torch, want unchanged %d", got, revealed)
	}
	if got := s.Brightness(9, 1); got != 255 {
		t.Errorf("torch tile = %d, want 255 on the step it is placed", got)
	}

	s.Step()
	if w, _ := s.eng.Word(s.reveal, 9, 1); w == 0 {
		t.Error("torch tile not revealed on the following step")
	}
}

func TestStepWallBlocksView(t *testing.T) {
	s := mustParse(t,
		"#########",
		"#@..#...#",
		"#########",
	)
	s.Approach = 1
	s.Step()

	if !s.Visible(4, 1) {
		t.Error("wall itself should be visible")
	}
	for x := 5; x < 8; x++ {
		if s.Visible(x, 1) || s.Brightness(x, 1) != 0 {
			t.Errorf("tile %d behind wall visible", x)
		}
	}
}

func TestStepRemembersRevealed(t *testing.T) {
	s := mustParse(t,
		"##########",
		"#@.......#",
		"##########",
	)
	s.Approach = 1
	s.Step()
	lit := s.Brightness(2, 1)
	if lit <= 30 {
		t.Fatalf("tile next to viewer = %d, want lit", lit)
	}

	s.Viewers[0].Intensity = 0
	s.Step()
	if got := s.Brightness(2, 1); got != 30 {
		t.Errorf("remembered tile = %d, want revealed floor 30", got)
	}
}

func TestStepShadowDarkens(t *testing.T) {
	s := mustParse(t,
		"#####",
		"#@~.#",
		"#####",
	)
	s.Shadows[0].Radius = 0
	s.Approach = 1
	s.Step()
	if got := s.Brightness(2, 1); got != 0 {
		t.Errorf("shadowed tile = %d, want 0", got)
	}
	if got := s.Brightness(3, 1); got == 0 {
		t.Error("tile past shadow should be lit")
	}
}

func TestStepBeaconAndPerspective(t *testing.T) {
	s := mustParse(t,
		"###########",
		"#@#......!#",
		"###########",
	)
	s.Approach = 1
	s.PerspectiveRadius = 1
	s.Step()

	if got := s.Brightness(9, 1); got != 255 {
		t.Errorf("beacon = %d, want 255", got)
	}
	if got := s.Brightness(0, 0); got != 0 {
		t.Errorf("(0,0) = %d, want 0", got)
	}
	if got := s.Brightness(1, 1); got == 0 {
		t.Error("viewer tile inside perspective circle is dark")
	}
}

func TestMove(t *testing.T) {
	s := mustParse(t,
		"####",
		"#@.#",
		"####",
	)
	if !s.Move(0, 1, 0) || s.Viewers[0].Point != (Point{2, 1}) {
		t.Errorf("move right failed: %+v", s.Viewers[0])
	}
	if s.Move(0, 1, 0) {
		t.Error("moved into wall")
	}
	if s.Move(3, 0, 0) {
		t.Error("moved a missing viewer")
	}
	s.ToggleWall(1, 1)
	if s.Move(0, -1, 0) {
		t.Error("moved into toggled wall")
	}
	s.SetWall(1, 1, false)
	if !s.Move(0, -1, 0) {
		t.Error("SetWall(false) did not clear the wall")
	}
}

func TestSnapshot(t *testing.T) {
	s := mustParse(t,
		"#####",
		"#.@.#",
		"#####",
	)
	s.Approach = 1
	s.Step()

	img := s.Snapshot()
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Fatalf("bounds = %v", b)
	}
	for y := range 3 {
		for x := range 5 {
			if got, want := img.GrayAt(x, y).Y, s.Brightness(x, y); got != want {
				t.Errorf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestASCII(t *testing.T) {
	s := mustParse(t,
		"#####",
		"#.@.#",
		"#####",
	)
	s.Approach = 1
	s.Step()

	out := s.ASCII()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[1][2] != '@' {
		t.Errorf("viewer glyph = %q", lines[1][2])
	}
	if lines[1][0] != '#' {
		t.Errorf("lit wall glyph = %q", lines[1][0])
	}
	if strings.ContainsRune(lines[1][1:2], ' ') {
		t.Errorf("lit floor drawn dark: %q", lines[1])
	}
}

func TestRooms(t *testing.T) {
	if Rooms(2, 10) != nil {
		t.Error("Rooms accepted a degenerate size")
	}
	rows := Rooms(32, 21)
	if len(rows) != 21 {
		t.Fatalf("rows = %d", len(rows))
	}
	for i, r := range rows {
		if len(r) != 32 {
			t.Errorf("row %d width %d", i, len(r))
		}
	}
	s, err := Parse(rows)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if len(s.Viewers) != 1 || len(s.Torches) == 0 || len(s.Beacons) != 1 {
		t.Errorf("viewers=%d torches=%d beacons=%d", len(s.Viewers), len(s.Torches), len(s.Beacons))
	}
	for range 10 {
		s.Step()
	}
	if s.Revealed() == 0 {
		t.Error("nothing revealed after 10 steps")
	}
}

func TestCloseReleasesGrids(t *testing.T) {
	s, err := Parse([]string{"@"})
	if err != nil {
		t.Fatal(err)
	}
	if s.table.Live() != 4 {
		t.Errorf("Live() = %d, want 4", s.table.Live())
	}
	s.Close()
	if s.table.Live() != 0 {
		t.Errorf("Live() after Close = %d", s.table.Live())
	}
}

func TestCustomTuning(t *testing.T) {
	tn := tilevis.DefaultTuning()
	tn.RevealedBrightness = 12
	s, err := Parse([]string{"@.."}, tilevis.WithTuning(tn))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Engine().Tuning().RevealedBrightness != 12 {
		t.Error("tuning not passed to engine")
	}
}

func BenchmarkStep(b *testing.B) {
	s, err := Parse(Rooms(80, 40))
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()
	b.ReportAllocs()
	for b.Loop() {
		s.Step()
	}
}
