package dice

import "github.com/Leonn190/Roll/internal/game"

// Hand is the set of attributes a player chose to roll dice for. Its
// capacity follows the player level; choosing a new attribute when full
// drops the oldest choice.
type Hand struct {
	capacity int
	active   []game.Attribute
}

// NewHand restores a hand from persisted choices. Unknown attributes and
// repeats are dropped, and only the newest entries that fit are kept.
func NewHand(level int, active []game.Attribute) *Hand {
	if level < 1 {
		level = 1
	}
	h := &Hand{capacity: level}
	for _, a := range active {
		h.add(a)
	}
	return h
}

func (h *Hand) has(a game.Attribute) int {
	for i, x := range h.active {
		if x == a {
			return i
		}
	}
	return -1
}

func (h *Hand) add(a game.Attribute) {
	if !game.ValidAttribute(a) || h.has(a) >= 0 {
		return
	}
	if len(h.active) >= h.capacity {
		h.active = h.active[1:]
	}
	h.active = append(h.active, a)
}

// Toggle selects a if it is not active and deselects it otherwise. It
// returns whether a is active afterwards.
func (h *Hand) Toggle(a game.Attribute) bool {
	if i := h.has(a); i >= 0 {
		h.active = append(h.active[:i], h.active[i+1:]...)
		return false
	}
	h.add(a)
	return h.has(a) >= 0
}

// Active returns a copy of the chosen attributes, oldest first.
func (h *Hand) Active() []game.Attribute {
	out := make([]game.Attribute, len(h.active))
	copy(out, h.active)
	return out
}

// Dice returns one die per active attribute using the given faces.
func (h *Hand) Dice(faces []int) []Die {
	if len(faces) == 0 {
		faces = DefaultFaces()
	}
	out := make([]Die, 0, len(h.active))
	for _, a := range h.active {
		f := make([]int, len(faces))
		copy(f, faces)
		out = append(out, Die{Attr: a, Faces: f})
	}
	return out
}
