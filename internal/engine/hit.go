package engine

import (
	"math"

	"github.com/Leonn190/Roll/internal/game"
)

// ComputeHit resolves a single attack of the given kind. It does not
// change either combatant.
func ComputeHit(rng Rand, a, d *game.Combatant, kind game.HitKind) game.HitRecord {
	if !roll(rng, chance(a.Percent.Accuracy)) {
		return game.HitRecord{Kind: kind}
	}
	raw := rawDamage(a, kind)
	mitigated := raw * ArmorMultiplier(effectiveDefense(a, d, kind))
	dmg := damageAfterMods(rng, a, d, mitigated)
	rawInt := round(raw)
	heal := round(float64(dmg) * math.Max(0, float64(a.Percent.Lifesteal)/100))
	return game.HitRecord{
		Kind:         kind,
		Hit:          true,
		Damage:       dmg,
		RawDamage:    rawInt,
		DefenseBlock: maxInt(0, rawInt-dmg),
		Heal:         maxInt(0, heal),
	}
}
