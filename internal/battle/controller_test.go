package battle

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/Leonn190/Roll/internal/game"
	"pgregory.net/rapid"
)

func side(name string, life, pd, spd, regen int) *game.Combatant {
	c := game.NewCombatant(name, life)
	c.Totals[game.AttrPhysicalDamage] = pd
	c.Totals[game.AttrSpeed] = spd
	c.Totals[game.AttrRegen] = regen
	return c
}

func TestRun_EndsWhenOneSideFalls(t *testing.T) {
	a := side("A", 100, 30, 10, 0)
	d := side("D", 100, 5, 10, 0)
	res, err := NewController(rand.New(rand.NewSource(7)), 0).Run(context.Background(), a, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Winner != "A" || res.Draw {
		t.Fatalf("expected A to win, got %+v", res.Winner)
	}
	if d.Life != 0 {
		t.Fatalf("expected D dead, got %d", d.Life)
	}
	last := res.Rounds[len(res.Rounds)-1]
	if last.Winner != "A" || len(res.Summaries) != len(res.Rounds) {
		t.Fatalf("last round must record the winner")
	}
}

func TestRun_DrawAtRoundCap(t *testing.T) {
	a := side("A", 100, 0, 5, 0)
	d := side("D", 100, 0, 5, 0)
	res, err := NewController(rand.New(rand.NewSource(1)), 3).Run(context.Background(), a, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Draw || res.Winner != "" || len(res.Rounds) != 3 {
		t.Fatalf("expected a 3 round draw, got %+v", res)
	}
}

func TestRun_CancelledBetweenRounds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := side("A", 100, 1, 5, 0)
	d := side("D", 100, 1, 5, 0)
	res, err := NewController(rand.New(rand.NewSource(1)), 10).Run(ctx, a, d)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(res.Rounds) != 0 || a.Life != 100 {
		t.Fatalf("no round may start after cancellation")
	}
}

func TestPlayback_MatchesEagerResult(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		a := side("A", rapid.IntRange(1, 300).Draw(rt, "alife"), rapid.IntRange(0, 60).Draw(rt, "apd"), rapid.IntRange(0, 40).Draw(rt, "aspd"), rapid.IntRange(0, 10).Draw(rt, "areg"))
		d := side("D", rapid.IntRange(1, 300).Draw(rt, "dlife"), rapid.IntRange(0, 60).Draw(rt, "dpd"), rapid.IntRange(0, 40).Draw(rt, "dspd"), rapid.IntRange(0, 10).Draw(rt, "dreg"))
		a.Percent.Lifesteal = rapid.IntRange(0, 100).Draw(rt, "steal")
		res, err := NewController(rand.New(rand.NewSource(seed)), 20).Run(context.Background(), a, d)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		for i, r := range res.Rounds {
			pb := NewPlayback(r, res.MaxLife)
			pb.Drain()
			if !pb.Done() {
				rt.Fatalf("playback not done")
			}
			var wantA, wantD int
			if i+1 < len(res.Rounds) {
				wantA, wantD = res.Rounds[i+1].LifeBefore["A"], res.Rounds[i+1].LifeBefore["D"]
			} else {
				wantA, wantD = a.Life, d.Life
			}
			if pb.Life("A") != wantA || pb.Life("D") != wantD {
				rt.Fatalf("round %d replay A=%d D=%d, eager A=%d D=%d", r.Round, pb.Life("A"), pb.Life("D"), wantA, wantD)
			}
		}
	})
}

func TestPlayback_StepsApplyInOrder(t *testing.T) {
	r := game.RoundLog{
		LifeBefore: map[string]int{"A": 10, "D": 10},
		Entries: []game.LogEntry{
			{Attacker: "A", Defender: "D", Hit: game.HitRecord{Kind: game.HitPhysical, Hit: true, Damage: 4}},
			{Attacker: "D", Defender: "A", Hit: game.HitRecord{Kind: game.HitPhysical, Hit: true, Damage: 3, Heal: 9}},
		},
	}
	pb := NewPlayback(r, map[string]int{"A": 10, "D": 10})
	s, ok := pb.Next()
	if !ok || !s.Applied || pb.Life("D") != 6 || pb.Life("A") != 10 {
		t.Fatalf("first step not applied correctly: %+v", s)
	}
	if steps := pb.Steps(); steps[1].Applied {
		t.Fatalf("second step must still be pending")
	}
	pb.Next()
	if pb.Life("A") != 7 || pb.Life("D") != 10 {
		t.Fatalf("expected A=7 D=10 (heal capped), got A=%d D=%d", pb.Life("A"), pb.Life("D"))
	}
	if _, ok := pb.Next(); ok {
		t.Fatalf("expected no more steps")
	}
}
