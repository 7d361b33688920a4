// Command tilevis-term walks a viewer through the demo scene in the
// terminal, drawing the light map as it converges.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/tilevis"
	"github.com/gogpu/tilevis/internal/demo"
)

const frameMs = 50

type Game struct {
	screen tcell.Screen
	scene  *demo.Scene
	sound  *sound

	revealed int
	status   string
}

func NewGame(scene *demo.Scene, quiet bool) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	g := &Game{screen: screen, scene: scene}
	if !quiet {
		g.sound, err = newSound()
		if err != nil {
			// Non-fatal, runs without sound
			tilevis.Logger().Warn("tilevis-term: audio unavailable", "err", err)
		}
	}
	return g, nil
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.move(0, -1)
		case tcell.KeyDown:
			g.move(0, 1)
		case tcell.KeyLeft:
			g.move(-1, 0)
		case tcell.KeyRight:
			g.move(1, 0)
		case tcell.KeyRune:
			return g.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *Game) handleRune(r rune) bool {
	v := g.scene.Viewers[0]
	switch r {
	case 'q':
		return false
	case 'k':
		g.move(0, -1)
	case 'j':
		g.move(0, 1)
	case 'h':
		g.move(-1, 0)
	case 'l':
		g.move(1, 0)
	case 't':
		g.scene.Torches = append(g.scene.Torches, demo.Torch{
			Point: v.Point, Outer: demo.TorchRadius, Intensity: demo.TorchIntensity,
		})
		g.status = fmt.Sprintf("torch at %d,%d", v.X, v.Y)
	case 's':
		g.scene.Shadows = append(g.scene.Shadows, demo.Shadow{Point: v.Point, Radius: 2})
		g.status = fmt.Sprintf("shadow at %d,%d", v.X, v.Y)
	case 'p':
		if g.scene.PerspectiveRadius == 0 {
			g.scene.PerspectiveRadius = 6
		} else {
			g.scene.PerspectiveRadius = 0
		}
		g.status = fmt.Sprintf("perspective radius %d", g.scene.PerspectiveRadius)
	case 'L':
		if g.scene.Viewers[0].Intensity == 0 {
			g.scene.Viewers[0].Intensity = demo.ViewerIntensity
		} else {
			g.scene.Viewers[0].Intensity = 0
		}
	}
	return true
}

func (g *Game) move(dx, dy int) {
	if !g.scene.Move(0, dx, dy) {
		g.status = "blocked"
	}
}

func (g *Game) draw() {
	g.screen.Clear()
	sw, sh := g.screen.Size()
	w, h := g.scene.Size()

	for y := 0; y < h && y < sh-1; y++ {
		for x := 0; x < w && x < sw; x++ {
			b := int32(g.scene.Brightness(x, y))
			ch := g.scene.Glyph(x, y)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(b, b, b*3/4))
			switch {
			case ch == '@':
				style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
			case ch == '#':
				style = style.Background(tcell.NewRGBColor(b/4, b/4, b/4))
			case ch != ' ':
				ch = '█'
			}
			g.screen.SetContent(x, y, ch, nil, style)
		}
	}

	status := fmt.Sprintf(" step %d  revealed %d  %s ", g.scene.Steps(), g.revealed, g.status)
	for i, r := range status {
		if i >= sw {
			break
		}
		g.screen.SetContent(i, sh-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(frameMs * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pollEvents(g.screen, eventChan, quit)

	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}
		case <-ticker.C:
			g.scene.Step()
			if n := g.scene.Revealed(); n > g.revealed {
				g.revealed = n
				g.sound.chime()
			}
			g.draw()
		}
	}
}

// pollEvents forwards screen events to ch until the screen is finalized
// (PollEvent returns nil) or quit is closed.
func pollEvents(screen tcell.Screen, ch chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case ch <- ev:
		case <-quit:
			return
		}
	}
}

func (g *Game) cleanup() {
	g.sound.close()
	g.screen.Fini()
}

func main() {
	os.Exit(runMain())
}

// runMain is main with deferred cleanup completed before the process exits.
func runMain() int {
	var (
		width   = flag.Int("width", 80, "map width in tiles")
		height  = flag.Int("height", 30, "map height in tiles")
		quiet   = flag.Bool("quiet", false, "disable sound")
		logFile = flag.String("log", "", "write engine diagnostics to this file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Printf("Failed to open log: %v", err)
			return 1
		}
		defer f.Close()
		tilevis.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	rows := demo.Rooms(*width, *height)
	scene, err := demo.Parse(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		return 1
	}
	defer scene.Close()

	game, err := NewGame(scene, *quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}
	defer game.cleanup()

	game.run()
	return 0
}
