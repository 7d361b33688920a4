package demo

import "strings"

// ramp maps brightness to a glyph, darkest first.
const ramp = " .:-=+*%"

// Glyph returns the character for (x, y): '@' for a viewer, '#' for a
// visible or remembered wall, a brightness ramp glyph otherwise.
func (s *Scene) Glyph(x, y int) rune {
	for _, v := range s.Viewers {
		if v.X == x && v.Y == y {
			return '@'
		}
	}
	b := s.Brightness(x, y)
	if b == 0 {
		return ' '
	}
	if s.Wall(x, y) {
		return '#'
	}
	return rune(ramp[1+int(b)*(len(ramp)-1)/256])
}

// ASCII renders the scene one line per row.
func (s *Scene) ASCII() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := range s.height {
		for x := range s.width {
			sb.WriteRune(s.Glyph(x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rooms returns a width×height layout of rooms joined by doorways, with
// one viewer, a torch per room and a beacon in the far corner.
func Rooms(width, height int) []string {
	if width < 3 || height < 3 {
		return nil
	}
	const room = 10
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(".", width))
	}
	for y := range height {
		for x := range width {
			border := x == 0 || y == 0 || x == width-1 || y == height-1
			partition := (x%room == 0 && y%(room/2) != room/4) || (y%room == 0 && x%(room/2) != room/4)
			if border || partition {
				grid[y][x] = '#'
			}
		}
	}
	for ry := room / 2; ry < height-1; ry += room {
		for rx := room / 2; rx < width-1; rx += room {
			if grid[ry][rx] == '.' {
				grid[ry][rx] = '*'
			}
		}
	}
	grid[1][1] = '@'
	if width > 4 && height > 4 {
		grid[height-2][width-2] = '!'
		if y, x := height/2-2, width/2+1; grid[y][x] == '.' {
			grid[y][x] = '~'
		}
	}

	rows := make([]string, height)
	for y, r := range grid {
		rows[y] = string(r)
	}
	return rows
}
