package engine

import (
	"math"

	"github.com/Leonn190/Roll/internal/game"
)

// --- Modifier helpers --------------------------------------------------

// ArmorMultiplier is the share of damage that passes a defense value.
// Positive defense scales as 100/(100+D); negative defense mirrors the
// curve and amplifies damage up to 2x.
func ArmorMultiplier(defense float64) float64 {
	if defense >= 0 {
		return 100 / (100 + defense)
	}
	return 2 - 100/(100-defense)
}

// effectiveDefense is the defender's relevant defense after half the
// attacker's penetration. It may go negative.
func effectiveDefense(a, d *game.Combatant, kind game.HitKind) float64 {
	split := math.Max(0, a.Total(game.AttrPenetration)) / 2
	if kind == game.HitMagic {
		return d.Total(game.AttrMagicDefense) - split
	}
	return d.Total(game.AttrPhysicalDefense) - split
}

func rawDamage(a *game.Combatant, kind game.HitKind) float64 {
	if kind == game.HitMagic {
		return math.Max(0, a.Total(game.AttrMagicDamage))
	}
	return math.Max(0, a.Total(game.AttrPhysicalDamage))
}

// damageAfterMods applies amplification, reduction and the crit roll to
// already mitigated damage. Nothing is rolled when there is no damage.
func damageAfterMods(rng Rand, a, d *game.Combatant, mitigated float64) int {
	if mitigated <= 0 {
		return 0
	}
	amp := 1 + float64(a.Percent.DamageAmp)/100
	red := math.Max(0, 1-float64(d.Percent.DamageReduction)/100)
	crit := 1.0
	if roll(rng, chance(a.Percent.CritChance)) {
		crit = 1 + math.Max(0, float64(a.Percent.CritDamage)/100)
	}
	return maxInt(0, round(math.Max(0, mitigated*amp*red*crit)))
}
