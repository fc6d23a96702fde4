// Command roll-sim plays headless battles between random boards drawn from
// the configured card list and prints the outcome of each.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Leonn190/Roll/internal/battle"
	"github.com/Leonn190/Roll/internal/config"
	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/dice"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/grid"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/stats"
	"github.com/Leonn190/Roll/internal/version"
)

func main() {
	configPath := flag.String("config", constants.DefaultConfigPath, "path to roll_config.yaml")
	battles := flag.Int("battles", 1, "number of battles to play")
	units := flag.Int("units", 8, "units each side tries to place")
	level := flag.Int("level", 2, "player level (dice slots)")
	seed := flag.Int64("seed", 0, "random seed; 0 uses the clock")
	verbose := flag.Bool("v", false, "print every round and replay the last one step by step")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("roll-sim", version.String())
		return
	}
	defer logging.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logging.Fatal("Missing or invalid roll configuration", err, logging.Fields{"config_path": *configPath})
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	fmt.Printf("seed %d, %d cards, %dx%d grid\n", *seed, len(cfg.Cards), cfg.GridCols, cfg.GridRows)

	wins := map[string]int{}
	for i := 1; i <= *battles; i++ {
		res, err := play(rng, cfg, *units, *level, *verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		outcome := res.Winner + " wins"
		if res.Draw {
			outcome = "draw"
			wins["draw"]++
		} else {
			wins[res.Winner]++
		}
		fmt.Printf("battle %d: %s after %d rounds\n", i, outcome, len(res.Rounds))
	}
	if *battles > 1 {
		fmt.Printf("red %d, blue %d, draws %d\n", wins["Red"], wins["Blue"], wins["draw"])
	}
}

// play builds two random boards and fights them.
func play(rng *rand.Rand, cfg *config.LoadedConfig, units, level int, verbose bool) (*battle.Result, error) {
	red := side(rng, cfg, "Red", units, level)
	blue := side(rng, cfg, "Blue", units, level)
	if verbose {
		describe(red)
		describe(blue)
	}
	res, err := battle.NewController(rng, cfg.MaxRounds).Run(context.Background(), red, blue)
	if err != nil {
		return nil, err
	}
	if verbose {
		for _, s := range res.Summaries {
			fmt.Println("  " + s)
		}
		if n := len(res.Rounds); n > 0 {
			replay(res.Rounds[n-1], res.MaxLife)
		}
	}
	return res, nil
}

// side places cards in random legal cells, then rolls random dice.
func side(rng *rand.Rand, cfg *config.LoadedConfig, name string, units, level int) *game.Combatant {
	g := grid.New(cfg.GridCols, cfg.GridRows)
	for _, i := range rng.Perm(len(cfg.Cards)) {
		if g.Len() >= units {
			break
		}
		u := game.NewUnit(cfg.Cards[i])
		u.Stars = 1 + rng.Intn(3)
		cells := g.ValidCells(&u)
		if len(cells) == 0 {
			continue
		}
		c := cells[rng.Intn(len(cells))]
		g.Place(&u, c.Col, c.Row)
	}
	placed := g.Units()
	for i := 0; i < stats.UnlockedCombatSlots && i < len(placed); i++ {
		placed[rng.Intn(len(placed))].Featured = true
	}

	if level > len(game.Attributes) {
		level = len(game.Attributes)
	}
	hand := dice.NewHand(level, nil)
	for _, a := range rng.Perm(len(game.Attributes))[:level] {
		hand.Toggle(game.Attributes[a])
	}
	c := stats.NewTracker(name, g).Combatant()
	c.Level = level
	dice.Apply(c, dice.RollAll(rng, hand.Dice(cfg.DiceFaces)))
	return c
}

func describe(c *game.Combatant) {
	fmt.Printf("%s: life %d", c.Name, c.MaxLife)
	for _, a := range game.Attributes {
		if c.Totals[a] != 0 || c.Intensity[a] != 0 {
			fmt.Printf(", %s %d(+%d)", a, c.Totals[a], c.Intensity[a])
		}
	}
	fmt.Println()
}

func replay(r game.RoundLog, maxLife map[string]int) {
	pb := battle.NewPlayback(r, maxLife)
	for {
		s, ok := pb.Next()
		if !ok {
			break
		}
		fmt.Printf("    %s -> %s %s: %d damage, %d heal (%s %d)\n",
			s.Attacker, s.Defender, s.Hit.Kind, s.Hit.Damage, s.Hit.Heal, s.Defender, pb.Life(s.Defender))
	}
}
