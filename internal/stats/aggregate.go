// Package stats sums the units on a board into one combatant.
package stats

import (
	"math"

	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/grid"
)

const (
	// CombatSlots is the number of featured slots a board has.
	CombatSlots = 4
	// UnlockedCombatSlots is how many of them can be used.
	UnlockedCombatSlots = 2
)

// StarMultiplier is 1 + 0.5 per star, stars clamped to 0..3.
func StarMultiplier(stars int) float64 {
	u := game.Unit{Stars: stars}
	return 1 + 0.5*float64(u.ClampedStars())
}

// Round rounds half to even, which is how the card numbers have always
// been scaled.
func Round(x float64) int { return int(math.RoundToEven(x)) }

// Result is the outcome of one aggregation pass.
type Result struct {
	Totals   game.Totals    `json:"totals"`
	MaxLife  int            `json:"max_life"`
	Synergy  map[string]int `json:"synergy"`
	Featured []uint         `json:"featured"`
}

// Aggregate sums every unit's star-scaled stats. Featured units are added
// a second time, at most UnlockedCombatSlots of them, in the order given.
func Aggregate(units []*game.Unit) Result {
	res := Result{Totals: game.Totals{}}
	for _, a := range game.Attributes {
		res.Totals[a] = 0
	}
	featured := 0
	seen := make(map[*game.Unit]bool, len(units))
	for _, u := range units {
		if u == nil || seen[u] {
			continue
		}
		seen[u] = true
		add(&res, u)
		if u.Featured && featured < UnlockedCombatSlots {
			add(&res, u)
			res.Featured = append(res.Featured, u.ID)
			featured++
		}
	}
	return res
}

func add(res *Result, u *game.Unit) {
	m := StarMultiplier(u.Stars)
	s := u.Stats
	res.MaxLife += Round(float64(s.Health) * m)
	res.Totals[game.AttrPhysicalDamage] += Round(float64(s.PhysicalDamage) * m)
	res.Totals[game.AttrMagicDamage] += Round(float64(s.SpecialDamage) * m)
	res.Totals[game.AttrPhysicalDefense] += Round(float64(s.PhysicalDefense) * m)
	res.Totals[game.AttrMagicDefense] += Round(float64(s.SpecialDefense) * m)
	res.Totals[game.AttrRegen] += Round(float64(s.Regen) * m)
	res.Totals[game.AttrMana] += Round(float64(s.Mana) * m)
	res.Totals[game.AttrSpeed] += Round(float64(s.Speed) * m)
	res.Totals[game.AttrPenetration] += Round(float64(s.Pierce) * m)
}

// ActiveSynergyCounts is the number of cells taking part in each active
// synergy. It is shown to players and does not change combat numbers.
func ActiveSynergyCounts(g *grid.Grid) map[string]int {
	active := g.ActiveSynergyPositions()
	out := make(map[string]int, len(active))
	for tag, set := range active {
		out[tag] = len(set)
	}
	return out
}

// Combatant builds a full-life combatant from an aggregation result.
func (r Result) Combatant(name string) *game.Combatant {
	c := game.NewCombatant(name, r.MaxLife)
	for k, v := range r.Totals {
		c.Totals[k] = v
	}
	return c
}
