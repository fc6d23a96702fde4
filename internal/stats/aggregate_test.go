package stats

import (
	"testing"

	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/grid"
	"pgregory.net/rapid"
)

func TestAggregate_StarScaling(t *testing.T) {
	u := &game.Unit{Stars: 1, Stats: game.StatTable{Health: 10, PhysicalDamage: 3, SpecialDamage: 5, Speed: 7, Pierce: 1}}
	res := Aggregate([]*game.Unit{u})
	// 1.5x: 15, 4.5->4, 7.5->8, 10.5->10, 1.5->2
	if res.MaxLife != 15 {
		t.Fatalf("expected max life 15, got %d", res.MaxLife)
	}
	if res.Totals[game.AttrPhysicalDamage] != 4 {
		t.Errorf("expected physical 4, got %d", res.Totals[game.AttrPhysicalDamage])
	}
	if res.Totals[game.AttrMagicDamage] != 8 {
		t.Errorf("expected magic 8, got %d", res.Totals[game.AttrMagicDamage])
	}
	if res.Totals[game.AttrSpeed] != 10 {
		t.Errorf("expected speed 10, got %d", res.Totals[game.AttrSpeed])
	}
	if res.Totals[game.AttrPenetration] != 2 {
		t.Errorf("expected penetration 2, got %d", res.Totals[game.AttrPenetration])
	}
}

func TestStarMultiplierClamped(t *testing.T) {
	if StarMultiplier(-2) != 1 || StarMultiplier(9) != 2.5 {
		t.Fatalf("stars must clamp to 0..3")
	}
}

func TestAggregate_FeaturedCountsTwiceUpToUnlocked(t *testing.T) {
	mk := func(id uint) *game.Unit {
		u := &game.Unit{Featured: true, Stats: game.StatTable{Health: 10}}
		u.ID = id
		return u
	}
	res := Aggregate([]*game.Unit{mk(1), mk(2), mk(3)})
	// three units once, two of them again
	if res.MaxLife != 50 {
		t.Fatalf("expected 50, got %d", res.MaxLife)
	}
	if len(res.Featured) != UnlockedCombatSlots {
		t.Fatalf("expected %d featured, got %v", UnlockedCombatSlots, res.Featured)
	}
}

func TestAggregate_IgnoresSynergyActivation(t *testing.T) {
	g := grid.New(10, 10)
	a := &game.Unit{CardSlug: "a", Synergies: []string{"x"}, Stats: game.StatTable{Health: 5}}
	b := &game.Unit{CardSlug: "b", Synergies: []string{"x"}, Stats: game.StatTable{Health: 5}}
	g.Place(a, 0, 0)
	g.Place(b, 5, 5)
	res := Aggregate(g.Units())
	if res.MaxLife != 10 {
		t.Fatalf("all placed units must contribute, got %d", res.MaxLife)
	}
	if len(ActiveSynergyCounts(g)) != 0 {
		t.Fatalf("no adjacency means no active synergy")
	}
}

func TestTracker_RecomputesOnlyWhenDirty(t *testing.T) {
	g := grid.New(10, 10)
	tr := NewTracker("P1", g)
	a := &game.Unit{CardSlug: "a", Synergies: []string{"x"}, Stats: game.StatTable{Health: 8}}
	g.Place(a, 0, 0)
	if tr.Result().MaxLife != 8 {
		t.Fatalf("expected 8")
	}
	tr.Result()
	tr.Result()
	if tr.Recomputations() != 1 {
		t.Fatalf("expected one recomputation, got %d", tr.Recomputations())
	}
	b := &game.Unit{CardSlug: "b", Synergies: []string{"x"}, Stats: game.StatTable{Health: 2}}
	g.Place(b, 1, 0)
	r := tr.Result()
	if r.MaxLife != 10 || r.Synergy["x"] != 2 {
		t.Fatalf("unexpected result after change: %+v", r)
	}
	c := tr.Combatant()
	if c.Life != c.MaxLife || c.MaxLife != 10 || c.Percent.Accuracy != 100 {
		t.Fatalf("combatant must start at full life with default accuracy: %+v", c)
	}
}

func TestAggregate_SumIsOrderIndependent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		units := make([]*game.Unit, n)
		for i := range units {
			units[i] = &game.Unit{
				Stars: rapid.IntRange(0, 3).Draw(rt, "stars"),
				Stats: game.StatTable{
					Health:         rapid.IntRange(0, 200).Draw(rt, "hp"),
					PhysicalDamage: rapid.IntRange(0, 50).Draw(rt, "pd"),
				},
			}
		}
		fwd := Aggregate(units)
		rev := make([]*game.Unit, n)
		for i := range units {
			rev[n-1-i] = units[i]
		}
		back := Aggregate(rev)
		if fwd.MaxLife != back.MaxLife || fwd.Totals[game.AttrPhysicalDamage] != back.Totals[game.AttrPhysicalDamage] {
			rt.Fatalf("aggregation depends on order")
		}
	})
}
