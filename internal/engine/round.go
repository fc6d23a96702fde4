package engine

import (
	"math"

	"github.com/Leonn190/Roll/internal/game"
)

// RoundResult is everything one call to ExecuteRound produced.
type RoundResult struct {
	Log []game.LogEntry `json:"log"`
	// Winner is the combatant whose opponent dropped to zero life, or nil.
	Winner       *game.Combatant `json:"-"`
	WinnerName   string          `json:"winner"`
	InitialOrder [2]string       `json:"initial_order"`
	Summary      string          `json:"summary"`
}

// HitSlots is the number of uncontested hits the faster side gets: two
// when it is at least three times faster, one when at least twice.
func HitSlots(first, second *game.Combatant) int {
	ratio := math.Max(1, first.Total(game.AttrSpeed)) / math.Max(1, second.Total(game.AttrSpeed))
	switch {
	case ratio >= 3:
		return 2
	case ratio >= 2:
		return 1
	}
	return 0
}

// turnOrder puts the faster combatant first. Equal speed favours the
// attacker.
func turnOrder(attacker, defender *game.Combatant) (first, second *game.Combatant) {
	if attacker.Total(game.AttrSpeed) >= defender.Total(game.AttrSpeed) {
		return attacker, defender
	}
	return defender, attacker
}

// ExecuteRound plays one round between attacker and defender. Life totals
// are changed in place, in log order.
//
//  1. physical: first hits; second answers unless first earned a pre-hit
//  2. magic: with two pre-hits first lands an extra uncontested magic hit,
//     otherwise both trade magic hits while alive
//  3. regen: attacker then defender heal if alive
func ExecuteRound(rng Rand, attacker, defender *game.Combatant) RoundResult {
	rc := newRoundContext(rng, attacker, defender)
	first, second := turnOrder(attacker, defender)
	pre := HitSlots(first, second)

	rc.apply(first, second, game.HitPhysical)
	if second.Alive() && pre < 1 {
		rc.apply(second, first, game.HitPhysical)
	}

	if second.Alive() && pre >= 2 {
		rc.apply(first, second, game.HitMagic)
	}
	if first.Alive() && second.Alive() && pre < 2 {
		rc.apply(first, second, game.HitMagic)
		if second.Alive() {
			rc.apply(second, first, game.HitMagic)
		}
	}

	rc.regen(attacker)
	rc.regen(defender)

	res := RoundResult{
		Log:          rc.log,
		InitialOrder: [2]string{first.Name, second.Name},
	}
	switch {
	case !defender.Alive():
		res.Winner = attacker
	case !attacker.Alive():
		res.Winner = defender
	}
	if res.Winner != nil {
		res.WinnerName = res.Winner.Name
		rc.add(res.WinnerName + " wins")
	}
	res.Summary = rc.joinSummary()
	return res
}
