package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.Gray {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 40)
	}
	return src
}

func TestWriteImageFormats(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format string
		decode func(*os.File) (image.Image, error)
	}{
		{"bmp by extension", "out.bmp", "", func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
		{"png by extension", "out.png", "", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{"explicit png", "out.img", "png", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := writeImage(testImage(), 4, path, tt.format); err != nil {
				t.Fatal(err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := tt.decode(f)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
				t.Errorf("bounds = %v, want 12x8", b)
			}
			// Tile (2,1) spans pixels 8..11 x 4..7.
			r, _, _, _ := img.At(9, 5).RGBA()
			if uint8(r>>8) != 200 {
				t.Errorf("pixel (9,5) = %d, want 200", r>>8)
			}
		})
	}
}

func TestWriteImageUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := writeImage(testImage(), 1, path, ""); err == nil {
		t.Error("expected error for gif")
	}
}

func TestLoadLayout(t *testing.T) {
	rows, err := loadLayout("", 20, 10)
	if err != nil || len(rows) != 10 {
		t.Fatalf("generated layout: %d rows, %v", len(rows), err)
	}
	if _, err := loadLayout("", 1, 1); err == nil {
		t.Error("expected error for tiny map")
	}

	path := filepath.Join(t.TempDir(), "map.txt")
	if err := os.WriteFile(path, []byte("###\n#@#\n###\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	rows, err = loadLayout(path, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[1] != "#@#" {
		t.Errorf("rows = %q", rows)
	}
}
