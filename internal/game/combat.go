package game

// Attribute names one of the combatant totals.
type Attribute string

const (
	AttrPhysicalDamage  Attribute = "physical_damage"
	AttrMagicDamage     Attribute = "magic_damage"
	AttrPhysicalDefense Attribute = "physical_defense"
	AttrMagicDefense    Attribute = "magic_defense"
	AttrRegen           Attribute = "regen"
	AttrMana            Attribute = "mana"
	AttrSpeed           Attribute = "speed"
	AttrPenetration     Attribute = "penetration"
)

// Attributes lists every combatant attribute in display order.
var Attributes = []Attribute{
	AttrPhysicalDamage,
	AttrMagicDamage,
	AttrPhysicalDefense,
	AttrMagicDefense,
	AttrRegen,
	AttrMana,
	AttrSpeed,
	AttrPenetration,
}

// ValidAttribute reports whether a is one of Attributes.
func ValidAttribute(a Attribute) bool {
	for _, x := range Attributes {
		if x == a {
			return true
		}
	}
	return false
}

// Totals holds the integer sum of every attribute for one side.
type Totals map[Attribute]int

// Percentages are integer percent modifiers. Values outside 0..100 are
// allowed; the resolver clamps them where a probability is needed.
type Percentages struct {
	DamageAmp       int `json:"damage_amp"`
	DamageReduction int `json:"damage_reduction"`
	Accuracy        int `json:"accuracy"`
	Lifesteal       int `json:"lifesteal"`
	CritChance      int `json:"crit_chance"`
	CritDamage      int `json:"crit_damage"`
}

// DefaultPercentages is what a freshly aggregated side starts with.
func DefaultPercentages() Percentages {
	return Percentages{Accuracy: 100}
}

// Combatant is one side of a battle. Totals come from the stat aggregator;
// Intensity holds the dice sum per attribute, each point adding 10% to
// that attribute's effective total.
type Combatant struct {
	Name      string            `json:"name"`
	Totals    Totals            `json:"totals"`
	Intensity map[Attribute]int `json:"intensity"`
	Percent   Percentages       `json:"percent"`
	Life      int               `json:"life"`
	MaxLife   int               `json:"max_life"`
	Level     int               `json:"level"`
}

// NewCombatant returns a combatant with empty totals, default percentages
// and full life.
func NewCombatant(name string, maxLife int) *Combatant {
	return &Combatant{
		Name:      name,
		Totals:    Totals{},
		Intensity: map[Attribute]int{},
		Percent:   DefaultPercentages(),
		Life:      maxLife,
		MaxLife:   maxLife,
		Level:     1,
	}
}

// Total returns the effective value of an attribute after dice intensity.
func (c *Combatant) Total(a Attribute) float64 {
	base := float64(c.Totals[a])
	return base * (1 + 0.10*float64(c.Intensity[a]))
}

// Alive reports whether life is above zero.
func (c *Combatant) Alive() bool { return c.Life > 0 }

// Damage lowers life, never below zero.
func (c *Combatant) Damage(n int) {
	if n <= 0 {
		return
	}
	c.Life -= n
	if c.Life < 0 {
		c.Life = 0
	}
}

// Heal raises life, never above MaxLife.
func (c *Combatant) Heal(n int) {
	if n <= 0 {
		return
	}
	c.Life += n
	if c.Life > c.MaxLife {
		c.Life = c.MaxLife
	}
}

// Clone returns a deep copy so a battle can run without touching the
// aggregated source.
func (c *Combatant) Clone() *Combatant {
	out := *c
	out.Totals = make(Totals, len(c.Totals))
	for k, v := range c.Totals {
		out.Totals[k] = v
	}
	out.Intensity = make(map[Attribute]int, len(c.Intensity))
	for k, v := range c.Intensity {
		out.Intensity[k] = v
	}
	return &out
}

type HitKind string

const (
	HitPhysical HitKind = "physical"
	HitMagic    HitKind = "magic"
	HitRegen    HitKind = "regen"
)

// HitRecord is the outcome of one exchange.
type HitRecord struct {
	Kind         HitKind `json:"kind"`
	Hit          bool    `json:"hit"`
	Damage       int     `json:"damage"`
	RawDamage    int     `json:"raw_damage"`
	DefenseBlock int     `json:"defense_block"`
	Heal         int     `json:"heal"`
}

// LogEntry pairs a hit with who dealt and who received it. Regen entries
// name the same combatant on both sides.
type LogEntry struct {
	Attacker string    `json:"attacker"`
	Defender string    `json:"defender"`
	Hit      HitRecord `json:"hit"`
}
