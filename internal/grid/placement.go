package grid

import "github.com/Leonn190/Roll/internal/game"

// CanPlace reports whether u may go to (col,row). It never mutates the
// grid.
//
// The first unit can go anywhere. After that a unit must touch at least
// one placed unit, share a tag with every unit it touches, and for each of
// those contacts at least one shared tag must be able to extend along the
// connecting line: the line is not owned by a different tag and the new
// cell stays on the tag's existing chain. Finally the board that would
// result must still keep every chain straight with one tag per line.
func (g *Grid) CanPlace(u *game.Unit, col, row int) bool {
	if u == nil {
		return false
	}
	cell := Cell{Col: col, Row: row}
	if !g.InBounds(cell) {
		return false
	}
	if _, taken := g.cells[cell]; taken {
		return false
	}
	id := u.Identity()
	for _, other := range g.cells {
		if other == u || other.Identity() == id {
			return false
		}
	}
	if len(g.cells) == 0 {
		return true
	}

	tags := tagSet(u)
	if len(tags) == 0 {
		return false
	}

	active := g.ActiveSynergyPositions()
	owners := LineOwners(active)

	touching := 0
	for _, d := range neighbors {
		n := cell.add(d)
		other, ok := g.cells[n]
		if !ok {
			continue
		}
		touching++
		if !g.contactOK(cell, n, tags, tagSet(other), active, owners) {
			return false
		}
	}
	if touching == 0 {
		return false
	}
	return consistentAfter(g.cells, cell, u)
}

func (g *Grid) contactOK(cell, n Cell, mine, theirs map[string]struct{}, active map[string]CellSet, owners map[Line]string) bool {
	key := connectingLine(cell, n)
	for s := range mine {
		if _, shared := theirs[s]; !shared {
			continue
		}
		if owner, owned := owners[key]; owned && owner != s {
			continue
		}
		if set, isActive := active[s]; isActive && !extendsChain(set, cell) {
			continue
		}
		return true
	}
	return false
}

// connectingLine is the row shared by horizontally adjacent cells or the
// column shared by vertically adjacent ones.
func connectingLine(a, b Cell) Line {
	if a.Row == b.Row {
		return Line{Orientation: Horizontal, Index: a.Row}
	}
	return Line{Orientation: Vertical, Index: a.Col}
}

// extendsChain reports whether c stays on the line of an existing chain.
// A single-cell chain accepts anything on its row or column.
func extendsChain(set CellSet, c Cell) bool {
	if len(set) == 0 {
		return true
	}
	if len(set) == 1 {
		for p := range set {
			return p.Row == c.Row || p.Col == c.Col
		}
	}
	sameRow, sameCol := true, true
	var first Cell
	seen := false
	for p := range set {
		if !seen {
			first, seen = p, true
			continue
		}
		if p.Row != first.Row {
			sameRow = false
		}
		if p.Col != first.Col {
			sameCol = false
		}
	}
	switch {
	case sameRow:
		return c.Row == first.Row
	case sameCol:
		return c.Col == first.Col
	}
	return false
}

// consistentAfter simulates the placement and checks that every active
// chain is straight and no line is claimed by two tags. A unit carrying
// several tags can otherwise pass the contact check through one tag while
// bending the chain of another.
func consistentAfter(cells map[Cell]*game.Unit, cell Cell, u *game.Unit) bool {
	next := make(map[Cell]*game.Unit, len(cells)+1)
	for c, v := range cells {
		next[c] = v
	}
	next[cell] = u
	active := activePositions(next)
	claimed := make(map[Line]string, len(active))
	for tag, set := range active {
		l, ok := ownedLine(set)
		if !ok {
			return false
		}
		if other, taken := claimed[l]; taken && other != tag {
			return false
		}
		claimed[l] = tag
	}
	return true
}
