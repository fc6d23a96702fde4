// Package battle runs whole battles out of single rounds and replays
// recorded rounds step by step.
package battle

import (
	"context"

	"github.com/Leonn190/Roll/internal/engine"
	"github.com/Leonn190/Roll/internal/game"
)

// DefaultMaxRounds stops battles where neither side can finish the other.
const DefaultMaxRounds = 50

// Controller repeats rounds until one side falls.
type Controller struct {
	rng       engine.Rand
	maxRounds int
}

func NewController(rng engine.Rand, maxRounds int) *Controller {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	return &Controller{rng: rng, maxRounds: maxRounds}
}

// Result is a finished (or interrupted) battle.
type Result struct {
	Rounds    []game.RoundLog `json:"rounds"`
	Summaries []string        `json:"summaries"`
	Winner    string          `json:"winner"`
	Draw      bool            `json:"draw"`
	MaxLife   map[string]int  `json:"max_life"`
}

// Run plays rounds with attacker always in the attacker seat. The context
// is checked between rounds; a round in progress always completes. On
// cancellation the rounds played so far are returned with the context
// error.
func (c *Controller) Run(ctx context.Context, attacker, defender *game.Combatant) (*Result, error) {
	res := &Result{
		MaxLife: map[string]int{attacker.Name: attacker.MaxLife, defender.Name: defender.MaxLife},
	}
	for n := 1; n <= c.maxRounds; n++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		before := map[string]int{attacker.Name: attacker.Life, defender.Name: defender.Life}
		rr := engine.ExecuteRound(c.rng, attacker, defender)
		res.Rounds = append(res.Rounds, game.RoundLog{
			Round:        n,
			LifeBefore:   before,
			Entries:      rr.Log,
			InitialOrder: rr.InitialOrder,
			Winner:       rr.WinnerName,
		})
		res.Summaries = append(res.Summaries, rr.Summary)
		if rr.Winner != nil {
			res.Winner = rr.WinnerName
			return res, nil
		}
	}
	res.Draw = true
	return res, nil
}
