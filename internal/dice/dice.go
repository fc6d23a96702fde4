// Package dice handles the attribute dice thrown before a battle. Every
// face point rolled for an attribute raises that attribute by 10% for the
// whole battle.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Leonn190/Roll/internal/game"
)

// Intn is the randomness a roll needs. *math/rand.Rand satisfies it.
type Intn interface {
	Intn(n int) int
}

// Die is one attribute die.
type Die struct {
	Attr  game.Attribute `json:"attr"`
	Faces []int          `json:"faces"`
}

// DefaultFaces is a plain six-sided die.
func DefaultFaces() []int { return []int{1, 2, 3, 4, 5, 6} }

// Roll returns one face value.
func (d Die) Roll(r Intn) int {
	if len(d.Faces) == 0 {
		return 0
	}
	return d.Faces[r.Intn(len(d.Faces))]
}

var exprRe = regexp.MustCompile(`(?i)^\s*(\d+)?\s*d\s*(\d+)(\s*([+\-x*])\s*(\d+))?\s*$`)

// ParseFaces builds the face list for a single-die expression such as
// "d6", "1d8+1" or "d4x2". Plain integers give a one-faced die.
func ParseFaces(expr string) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return DefaultFaces(), nil
	}
	if n, err := strconv.Atoi(expr); err == nil {
		return []int{n}, nil
	}
	m := exprRe.FindStringSubmatch(expr)
	if m == nil {
		return nil, fmt.Errorf("invalid dice expression %q", expr)
	}
	if m[1] != "" && m[1] != "1" {
		return nil, fmt.Errorf("dice expression %q must describe a single die", expr)
	}
	sides, _ := strconv.Atoi(m[2])
	if sides <= 0 {
		return nil, fmt.Errorf("dice expression %q has no sides", expr)
	}
	faces := make([]int, sides)
	for i := range faces {
		v := i + 1
		if m[3] != "" {
			k, _ := strconv.Atoi(m[5])
			switch m[4] {
			case "+":
				v += k
			case "-":
				v -= k
			case "x", "X", "*":
				v *= k
			}
		}
		if v < 0 {
			v = 0
		}
		faces[i] = v
	}
	return faces, nil
}

// RollAll throws every die and sums the faces per attribute.
func RollAll(r Intn, dice []Die) map[game.Attribute]int {
	out := make(map[game.Attribute]int, len(dice))
	for _, d := range dice {
		out[d.Attr] += d.Roll(r)
	}
	return out
}

// Apply adds rolled sums to a combatant's intensity.
func Apply(c *game.Combatant, sums map[game.Attribute]int) {
	if c.Intensity == nil {
		c.Intensity = make(map[game.Attribute]int, len(sums))
	}
	for a, v := range sums {
		c.Intensity[a] += v
	}
}
