// Package heatmap accumulates move frequencies across games and renders
// them as a PNG for pattern analysis.
package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"tictactoe/game"
)

// Map counts moves per cell across recorded games. Separate grids track
// all moves, moves per mark, and moves made by the eventual winner and
// loser of each game.
type Map struct {
	size    int
	games   int
	all     []int
	xMoves  []int
	oMoves  []int
	winning []int
	losing  []int
}

// New returns an empty move map for the given board size.
func New(size int) (*Map, error) {
	if size < game.MinBoardSize || size > game.MaxBoardSize {
		return nil, fmt.Errorf("heatmap: board size %d out of range [%d, %d]", size, game.MinBoardSize, game.MaxBoardSize)
	}
	cells := size * size
	return &Map{
		size:    size,
		all:     make([]int, cells),
		xMoves:  make([]int, cells),
		oMoves:  make([]int, cells),
		winning: make([]int, cells),
		losing:  make([]int, cells),
	}, nil
}

// Size returns the board size the map was built for.
func (m *Map) Size() int { return m.size }

// Games returns how many games have been recorded.
func (m *Map) Games() int { return m.games }

// RecordGame adds one finished game to the map. Moves by the winning
// mark count toward the winning grid and the rest toward the losing
// grid; drawn games contribute to neither.
func (m *Map) RecordGame(moves []game.HistoryEntry, winner game.Cell) {
	for _, entry := range moves {
		idx := m.index(entry.Move.Row, entry.Move.Col)
		m.all[idx]++
		if entry.Player == game.X {
			m.xMoves[idx]++
		} else {
			m.oMoves[idx]++
		}
		if winner == game.Empty {
			continue
		}
		if entry.Player == winner {
			m.winning[idx]++
		} else {
			m.losing[idx]++
		}
	}
	m.games++
}

func (m *Map) index(row, col int) int { return row*m.size + col }

// Stats summarizes the recorded move distribution. Cell positions are
// only meaningful when TotalMoves is non-zero. Preferences are
// percentages of all moves landing on the center (the middle cell, or
// the middle four cells on even boards), the four corners, and the
// border cells between corners.
type Stats struct {
	TotalMoves  int
	MostPlayed  game.Move
	LeastPlayed game.Move
	CenterPct   float64
	CornerPct   float64
	EdgePct     float64
}

// Stats computes summary statistics over every recorded move.
func (m *Map) Stats() Stats {
	var s Stats
	for _, n := range m.all {
		s.TotalMoves += n
	}
	if s.TotalMoves == 0 {
		return s
	}

	maxIdx, minIdx := 0, 0
	for i, n := range m.all {
		if n > m.all[maxIdx] {
			maxIdx = i
		}
		if n < m.all[minIdx] {
			minIdx = i
		}
	}
	s.MostPlayed = game.Move{Row: maxIdx / m.size, Col: maxIdx % m.size}
	s.LeastPlayed = game.Move{Row: minIdx / m.size, Col: minIdx % m.size}

	center := 0
	mid := m.size / 2
	if m.size%2 == 1 {
		center = m.all[m.index(mid, mid)]
	} else {
		for _, row := range []int{mid - 1, mid} {
			for _, col := range []int{mid - 1, mid} {
				center += m.all[m.index(row, col)]
			}
		}
	}

	last := m.size - 1
	corners := m.all[m.index(0, 0)] + m.all[m.index(0, last)] +
		m.all[m.index(last, 0)] + m.all[m.index(last, last)]

	edges := 0
	for i := 1; i < last; i++ {
		edges += m.all[m.index(0, i)] + m.all[m.index(last, i)] +
			m.all[m.index(i, 0)] + m.all[m.index(i, last)]
	}

	total := float64(s.TotalMoves)
	s.CenterPct = float64(center) / total * 100
	s.CornerPct = float64(corners) / total * 100
	s.EdgePct = float64(edges) / total * 100
	return s
}

var (
	panelWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	panelGrid  = color.RGBA{R: 204, G: 204, B: 204, A: 255}
	allBase    = color.RGBA{R: 230, G: 110, B: 20, A: 255}
	xBase      = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	oBase      = color.RGBA{R: 40, G: 70, B: 200, A: 255}
	winBase    = color.RGBA{R: 30, G: 140, B: 50, A: 255}
	lossBase   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

// Save renders the map and writes it to path as a PNG.
func (m *Map) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heat map file: %w", err)
	}
	defer f.Close()

	if err := m.WritePNG(f); err != nil {
		return fmt.Errorf("failed to write heat map: %w", err)
	}
	return nil
}

// WritePNG encodes the map as a single PNG with four panels side by
// side: all moves, X versus O frequency, winning-game moves and
// losing-game moves. Cell intensity scales with count relative to the
// busiest cell of each panel.
func (m *Map) WritePNG(w io.Writer) error {
	px := cellPixels(m.size)
	const margin = 8
	gap := px
	side := m.size * px

	panels := []func(row, col int) color.RGBA{
		m.rampCell(m.all, allBase),
		m.diffCell(),
		m.rampCell(m.winning, winBase),
		m.rampCell(m.losing, lossBase),
	}

	width := 2*margin + len(panels)*side + (len(panels)-1)*gap
	height := 2*margin + side
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(panelWhite), image.Point{}, draw.Src)

	for i, at := range panels {
		m.drawPanel(img, margin+i*(side+gap), margin, px, at)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode heat map: %w", err)
	}
	return nil
}

// cellPixels keeps each panel near 240px across supported board sizes.
func cellPixels(size int) int {
	px := 240 / size
	if px < 3 {
		px = 3
	}
	if px > 24 {
		px = 24
	}
	return px
}

func (m *Map) rampCell(grid []int, base color.RGBA) func(row, col int) color.RGBA {
	peak := 0
	for _, n := range grid {
		if n > peak {
			peak = n
		}
	}
	return func(row, col int) color.RGBA {
		return blend(base, grid[m.index(row, col)], peak)
	}
}

// diffCell shades cells toward the mark that played them more often.
func (m *Map) diffCell() func(row, col int) color.RGBA {
	extent := 0
	for i := range m.xMoves {
		d := m.xMoves[i] - m.oMoves[i]
		if d < 0 {
			d = -d
		}
		if d > extent {
			extent = d
		}
	}
	return func(row, col int) color.RGBA {
		d := m.xMoves[m.index(row, col)] - m.oMoves[m.index(row, col)]
		switch {
		case d > 0:
			return blend(xBase, d, extent)
		case d < 0:
			return blend(oBase, -d, extent)
		default:
			return panelWhite
		}
	}
}

// blend interpolates from white toward base as v approaches peak.
func blend(base color.RGBA, v, peak int) color.RGBA {
	if v <= 0 || peak <= 0 {
		return panelWhite
	}
	t := float64(v) / float64(peak)
	mix := func(c uint8) uint8 {
		return uint8(255 - t*(255-float64(c)) + 0.5)
	}
	return color.RGBA{R: mix(base.R), G: mix(base.G), B: mix(base.B), A: 255}
}

func (m *Map) drawPanel(img *image.RGBA, x0, y0, px int, at func(row, col int) color.RGBA) {
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			cell := at(row, col)
			for y := y0 + row*px; y < y0+(row+1)*px; y++ {
				for x := x0 + col*px; x < x0+(col+1)*px; x++ {
					img.SetRGBA(x, y, cell)
				}
			}
		}
	}

	side := m.size * px
	for i := 0; i <= m.size; i++ {
		offset := i * px
		if i == m.size {
			offset--
		}
		for x := x0; x < x0+side; x++ {
			img.SetRGBA(x, y0+offset, panelGrid)
		}
		for y := y0; y < y0+side; y++ {
			img.SetRGBA(x0+offset, y, panelGrid)
		}
	}
}
