package battle

import "github.com/Leonn190/Roll/internal/game"

// Step is one log entry waiting to be shown.
type Step struct {
	game.LogEntry
	Applied bool `json:"applied"`
}

// Playback re-applies a recorded round against the life totals captured
// before it, one step at a time, so a client can animate a hit and only
// then show its effect.
type Playback struct {
	steps   []Step
	next    int
	life    map[string]int
	maxLife map[string]int
}

func NewPlayback(r game.RoundLog, maxLife map[string]int) *Playback {
	p := &Playback{
		steps:   make([]Step, len(r.Entries)),
		life:    make(map[string]int, len(r.LifeBefore)),
		maxLife: maxLife,
	}
	for i, e := range r.Entries {
		p.steps[i] = Step{LogEntry: e}
	}
	for k, v := range r.LifeBefore {
		p.life[k] = v
	}
	return p
}

// Next applies the next pending step and returns it. ok is false once
// every step has been applied.
func (p *Playback) Next() (step Step, ok bool) {
	if p.next >= len(p.steps) {
		return Step{}, false
	}
	s := &p.steps[p.next]
	p.next++

	if s.Hit.Damage > 0 {
		v := p.life[s.Defender] - s.Hit.Damage
		if v < 0 {
			v = 0
		}
		p.life[s.Defender] = v
	}
	if s.Hit.Heal > 0 {
		v := p.life[s.Attacker] + s.Hit.Heal
		if m, capped := p.maxLife[s.Attacker]; capped && v > m {
			v = m
		}
		p.life[s.Attacker] = v
	}
	s.Applied = true
	return *s, true
}

// Drain applies every remaining step.
func (p *Playback) Drain() {
	for {
		if _, ok := p.Next(); !ok {
			return
		}
	}
}

// Life is the displayed life of a combatant after the applied steps.
func (p *Playback) Life(name string) int { return p.life[name] }

// Done reports whether every step was applied.
func (p *Playback) Done() bool { return p.next >= len(p.steps) }

// Steps returns a copy of all steps with their applied flags.
func (p *Playback) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}
