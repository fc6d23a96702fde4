package engine

import (
	"fmt"
	"strings"

	"github.com/Leonn190/Roll/internal/game"
)

// Rand is the randomness the resolver consumes. *math/rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	rng      Rand
	attacker *game.Combatant
	defender *game.Combatant
	log      []game.LogEntry
	summary  []string
}

func newRoundContext(rng Rand, attacker, defender *game.Combatant) *roundContext {
	return &roundContext{
		rng:      rng,
		attacker: attacker,
		defender: defender,
		log:      make([]game.LogEntry, 0, 8),
		summary:  make([]string, 0, 8),
	}
}

func (rc *roundContext) add(msg string) { rc.summary = append(rc.summary, msg) }

// apply resolves one hit from a to d, mutates both life totals and
// records the entry.
func (rc *roundContext) apply(a, d *game.Combatant, kind game.HitKind) {
	h := ComputeHit(rc.rng, a, d, kind)
	d.Damage(h.Damage)
	a.Heal(h.Heal)
	rc.log = append(rc.log, game.LogEntry{Attacker: a.Name, Defender: d.Name, Hit: h})
	rc.add(describe(a.Name, d.Name, h))
}

func (rc *roundContext) regen(p *game.Combatant) {
	n := round(p.Total(game.AttrRegen))
	if n <= 0 || !p.Alive() {
		return
	}
	p.Heal(n)
	rc.log = append(rc.log, game.LogEntry{
		Attacker: p.Name,
		Defender: p.Name,
		Hit:      game.HitRecord{Kind: game.HitRegen, Hit: true, Heal: n},
	})
	rc.add(fmt.Sprintf("%s regenerates %d", p.Name, n))
}

// joinSummary returns the accumulated summary as a single string.
func (rc *roundContext) joinSummary() string {
	return strings.Join(rc.summary, "\n")
}

func describe(a, d string, h game.HitRecord) string {
	if !h.Hit {
		return fmt.Sprintf("%s misses %s (%s)", a, d, h.Kind)
	}
	msg := fmt.Sprintf("%s hits %s for %d %s damage (%d blocked)", a, d, h.Damage, h.Kind, h.DefenseBlock)
	if h.Heal > 0 {
		msg += fmt.Sprintf(", drains %d", h.Heal)
	}
	return msg
}
