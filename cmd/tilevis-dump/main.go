// Command tilevis-dump runs the demo scene headless and writes the light
// map as an image.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/gogpu/tilevis"
	"github.com/gogpu/tilevis/internal/demo"
)

func main() {
	var (
		width    = flag.Int("width", 64, "map width in tiles")
		height   = flag.Int("height", 32, "map height in tiles")
		steps    = flag.Int("steps", 30, "simulation steps")
		scale    = flag.Int("scale", 8, "pixels per tile")
		output   = flag.String("output", "tilevis.bmp", "output file")
		format   = flag.String("format", "", "image format: bmp or png (default from extension)")
		layout   = flag.String("layout", "", "text layout file (default generated rooms)")
		radius   = flag.Int("perspective", 0, "perspective radius in tiles, 0 for the whole map")
		ascii    = flag.Bool("ascii", false, "print the final frame as text")
		verbose  = flag.Bool("verbose", false, "log engine diagnostics")
		approach = flag.Float64("approach", 0.35, "brightness convergence per step")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	tilevis.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	rows, err := loadLayout(*layout, *width, *height)
	if err != nil {
		log.Fatalf("Failed to load layout: %v", err)
	}
	scene, err := demo.Parse(rows)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	defer scene.Close()
	scene.PerspectiveRadius = *radius
	scene.Approach = *approach

	for range *steps {
		scene.Step()
		// Walk the first viewer along the open floor.
		if !scene.Move(0, 1, 0) {
			scene.Move(0, 0, 1)
		}
	}
	tilevis.Logger().Info("tilevis-dump: done", "scene", scene)

	if err := writeImage(scene.Snapshot(), *scale, *output, *format); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *ascii {
		fmt.Print(scene.ASCII())
	}

	w, h := scene.Size()
	log.Printf("Light map saved to %s (%dx%d tiles, %d steps)\n", *output, w, h, scene.Steps())
}

func loadLayout(path string, width, height int) ([]string, error) {
	if path == "" {
		rows := demo.Rooms(width, height)
		if rows == nil {
			return nil, fmt.Errorf("map %dx%d too small", width, height)
		}
		return rows, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

// writeImage scales src by scale with nearest-neighbour sampling so every
// tile stays a crisp block, then encodes it.
func writeImage(src *image.Gray, scale int, path, format string) error {
	scale = max(scale, 1)
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "bmp":
		err = bmp.Encode(f, dst)
	case "png":
		err = png.Encode(f, dst)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
