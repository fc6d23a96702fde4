// Package grid tracks unit placement on the board and decides which
// synergies are active. A synergy is active for a tag when two units
// sharing that tag sit next to each other; every active chain must run
// along one row or one column, and a row or column carries at most one
// synergy.
package grid

import (
	"sort"

	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/keys"
)

const (
	DefaultCols = 10
	DefaultRows = 10
)

type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c Cell) add(d Cell) Cell { return Cell{Col: c.Col + d.Col, Row: c.Row + d.Row} }

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

// Sorted returns the cells ordered by row, then column.
func (s CellSet) Sorted() []Cell {
	out := make([]Cell, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sortCells(out)
	return out
}

type Orientation string

const (
	Horizontal Orientation = "H"
	Vertical   Orientation = "V"
)

// Line identifies one row (Horizontal) or one column (Vertical).
type Line struct {
	Orientation Orientation `json:"orientation"`
	Index       int         `json:"index"`
}

var (
	forward   = []Cell{{Col: 1, Row: 0}, {Col: 0, Row: 1}}
	neighbors = []Cell{{Col: 1, Row: 0}, {Col: -1, Row: 0}, {Col: 0, Row: 1}, {Col: 0, Row: -1}}
)

// Grid is the occupancy map for one player's board. It is not safe for
// concurrent use.
type Grid struct {
	cols, rows int
	cells      map[Cell]*game.Unit
	dirty      bool
}

// New returns an empty grid. Non-positive sizes fall back to the 10x10
// default.
func New(cols, rows int) *Grid {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Grid{cols: cols, rows: rows, cells: make(map[Cell]*game.Unit)}
}

// FromUnits rebuilds a grid from units whose location is the grid. Units
// elsewhere or out of bounds are ignored.
func FromUnits(cols, rows int, units []*game.Unit) *Grid {
	g := New(cols, rows)
	for _, u := range units {
		if u == nil || u.Location != game.LocationGrid {
			continue
		}
		c := Cell{Col: u.Col, Row: u.Row}
		if !g.InBounds(c) {
			continue
		}
		g.cells[c] = u
	}
	g.dirty = true
	return g
}

func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.cols && c.Row >= 0 && c.Row < g.rows
}

// At returns the unit at (col,row) or nil.
func (g *Grid) At(col, row int) *game.Unit { return g.cells[Cell{Col: col, Row: row}] }

// Len is the number of placed units.
func (g *Grid) Len() int { return len(g.cells) }

// Place writes u into (col,row) without checking legality and marks the
// grid dirty. Callers check CanPlace first.
func (g *Grid) Place(u *game.Unit, col, row int) {
	if u == nil {
		return
	}
	u.Location = game.LocationGrid
	u.Col = col
	u.Row = row
	g.cells[Cell{Col: col, Row: row}] = u
	g.dirty = true
}

// Remove lifts the unit at (col,row) off the grid and returns it. The
// caller decides where the unit goes next.
func (g *Grid) Remove(col, row int) *game.Unit {
	c := Cell{Col: col, Row: row}
	u, ok := g.cells[c]
	if !ok {
		return nil
	}
	delete(g.cells, c)
	g.dirty = true
	return u
}

// Units returns a snapshot of placed units ordered by row, then column.
func (g *Grid) Units() []*game.Unit {
	cells := make([]Cell, 0, len(g.cells))
	for c := range g.cells {
		cells = append(cells, c)
	}
	sortCells(cells)
	out := make([]*game.Unit, 0, len(cells))
	for _, c := range cells {
		out = append(out, g.cells[c])
	}
	return out
}

// Dirty reports whether the grid changed since the last ConsumeDirty.
func (g *Grid) Dirty() bool { return g.dirty }

// ConsumeDirty returns the dirty flag and clears it.
func (g *Grid) ConsumeDirty() bool {
	d := g.dirty
	g.dirty = false
	return d
}

// ActiveSynergyPositions maps each active tag to the cells that take part
// in at least one adjacent pairing for it. Only the right and lower
// neighbours are scanned so each pair is seen once.
func (g *Grid) ActiveSynergyPositions() map[string]CellSet {
	return activePositions(g.cells)
}

func activePositions(cells map[Cell]*game.Unit) map[string]CellSet {
	active := make(map[string]CellSet)
	for c, u := range cells {
		tags := tagSet(u)
		if len(tags) == 0 {
			continue
		}
		for _, d := range forward {
			n := c.add(d)
			other, ok := cells[n]
			if !ok {
				continue
			}
			for s := range tagSet(other) {
				if _, shared := tags[s]; !shared {
					continue
				}
				set := active[s]
				if set == nil {
					set = make(CellSet)
					active[s] = set
				}
				set[c] = struct{}{}
				set[n] = struct{}{}
			}
		}
	}
	return active
}

// LineOwners derives which tag owns each row or column. A tag owns a line
// when it has at least two active cells and all of them sit on it.
func LineOwners(active map[string]CellSet) map[Line]string {
	owners := make(map[Line]string)
	for _, tag := range sortedTags(active) {
		if l, ok := ownedLine(active[tag]); ok {
			if _, taken := owners[l]; !taken {
				owners[l] = tag
			}
		}
	}
	return owners
}

func ownedLine(set CellSet) (Line, bool) {
	if len(set) < 2 {
		return Line{}, false
	}
	sameRow, sameCol := true, true
	var first Cell
	seen := false
	for c := range set {
		if !seen {
			first, seen = c, true
			continue
		}
		if c.Row != first.Row {
			sameRow = false
		}
		if c.Col != first.Col {
			sameCol = false
		}
	}
	switch {
	case sameRow:
		return Line{Orientation: Horizontal, Index: first.Row}, true
	case sameCol:
		return Line{Orientation: Vertical, Index: first.Col}, true
	}
	return Line{}, false
}

// ValidCells lists every cell where u could be placed right now.
func (g *Grid) ValidCells(u *game.Unit) []Cell {
	out := make([]Cell, 0)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.CanPlace(u, c, r) {
				out = append(out, Cell{Col: c, Row: r})
			}
		}
	}
	return out
}

func tagSet(u *game.Unit) map[string]struct{} {
	out := make(map[string]struct{}, len(u.Synergies))
	for _, s := range u.Synergies {
		if k := keys.SynergyKey(s); k != "" {
			out[k] = struct{}{}
		}
	}
	return out
}

func sortedTags(active map[string]CellSet) []string {
	out := make([]string, 0, len(active))
	for k := range active {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}
