package stats

import (
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/grid"
)

// Tracker caches the aggregate for a grid and only recomputes after the
// grid reports a change.
type Tracker struct {
	name   string
	grid   *grid.Grid
	last   Result
	ready  bool
	recalc int
}

func NewTracker(name string, g *grid.Grid) *Tracker {
	return &Tracker{name: name, grid: g}
}

// Result returns the current aggregate, recomputing if the grid is dirty.
func (t *Tracker) Result() Result {
	if t.grid.ConsumeDirty() || !t.ready {
		t.last = Aggregate(t.grid.Units())
		t.last.Synergy = ActiveSynergyCounts(t.grid)
		t.ready = true
		t.recalc++
	}
	return t.last
}

// Combatant returns a fresh full-life combatant for the battle phase.
func (t *Tracker) Combatant() *game.Combatant {
	return t.Result().Combatant(t.name)
}

// Recomputations reports how many times the aggregate was rebuilt.
func (t *Tracker) Recomputations() int { return t.recalc }
