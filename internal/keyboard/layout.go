// Package keyboard describes the on-screen keyboard grid: rows of key cells
// where a key may span several columns. It is pure data; rendering surfaces
// and navigation read it but never change it.
package keyboard

import (
	"github.com/pkg/errors"

	"github.com/soar/GamepadKeyMouse/internal/keys"
)

// Point is a grid coordinate. X is the column, Y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key is one entry of a layout definition. An empty Label is a gap.
type Key struct {
	Label string
	Span  int
}

// Cell is a canonical key cell. Columns X+1 .. X+Span-1 of its row are
// aliases resolving back to it.
type Cell struct {
	Label string     `json:"label"`
	Span  int        `json:"span"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Token keys.Token `json:"token"`
}

// HasToken reports whether activating the cell emits a key.
func (c Cell) HasToken() bool {
	return c.Token != keys.None
}

// Origin returns the canonical coordinate of the cell.
func (c Cell) Origin() Point {
	return Point{X: c.X, Y: c.Y}
}

const empty = -1

// Layout is an immutable key grid.
type Layout struct {
	cols, rows int
	// grid[y][x] indexes cells, or is empty.
	grid  [][]int
	cells []Cell
}

// Build validates rows and resolves every label to its token once.
// Every row must have the same total width.
func Build(rows [][]Key) (*Layout, error) {
	if len(rows) == 0 {
		return nil, errors.New("layout has no rows")
	}
	l := &Layout{rows: len(rows)}
	for y, row := range rows {
		var line []int
		seen := map[string]int{}
		for _, k := range row {
			span := k.Span
			if span < 1 {
				span = 1
			}
			if k.Label == "" {
				for i := 0; i < span; i++ {
					line = append(line, empty)
				}
				continue
			}
			side := keys.SideLeft
			if seen[k.Label] > 0 {
				side = keys.SideRight
			}
			seen[k.Label]++
			tok, _ := keys.Parse(k.Label, side)
			idx := len(l.cells)
			l.cells = append(l.cells, Cell{
				Label: k.Label,
				Span:  span,
				X:     len(line),
				Y:     y,
				Token: tok,
			})
			for i := 0; i < span; i++ {
				line = append(line, idx)
			}
		}
		if y == 0 {
			l.cols = len(line)
		} else if len(line) != l.cols {
			return nil, errors.Errorf("row %d is %d columns wide, want %d", y, len(line), l.cols)
		}
		l.grid = append(l.grid, line)
	}
	if l.cols == 0 {
		return nil, errors.New("layout has no columns")
	}
	return l, nil
}

// MustBuild is Build for static tables.
func MustBuild(rows [][]Key) *Layout {
	l, err := Build(rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Size returns the grid width and height.
func (l *Layout) Size() (cols, rows int) {
	return l.cols, l.rows
}

// InBounds reports whether p lies on the grid.
func (l *Layout) InBounds(p Point) bool {
	return p.Y >= 0 && p.Y < l.rows && p.X >= 0 && p.X < l.cols
}

// Lookup resolves p, canonical or alias, to its key cell.
func (l *Layout) Lookup(p Point) (Cell, bool) {
	if !l.InBounds(p) {
		return Cell{}, false
	}
	idx := l.grid[p.Y][p.X]
	if idx == empty {
		return Cell{}, false
	}
	return l.cells[idx], true
}

// Navigable reports whether a cursor may stop on p.
func (l *Layout) Navigable(p Point) bool {
	_, ok := l.Lookup(p)
	return ok
}

// SameKey reports whether a and b resolve to the same canonical cell.
func (l *Layout) SameKey(a, b Point) bool {
	ca, ok := l.Lookup(a)
	if !ok {
		return false
	}
	cb, ok := l.Lookup(b)
	return ok && ca.Origin() == cb.Origin()
}

// Cells returns the canonical cells in row-major order.
func (l *Layout) Cells() []Cell {
	out := make([]Cell, len(l.cells))
	copy(out, l.cells)
	return out
}

// Find returns the origin of the first cell labelled label.
func (l *Layout) Find(label string) (Point, bool) {
	for _, c := range l.cells {
		if c.Label == label {
			return c.Origin(), true
		}
	}
	return Point{}, false
}
