package game

import "strings"

// StatTable holds a card's fixed stats as they appear in the card list.
// Missing values are zero.
type StatTable struct {
	Health          int `json:"health" yaml:"health"`
	PhysicalDamage  int `json:"physical_damage" yaml:"physical_damage"`
	SpecialDamage   int `json:"special_damage" yaml:"special_damage"`
	PhysicalDefense int `json:"physical_defense" yaml:"physical_defense"`
	SpecialDefense  int `json:"special_defense" yaml:"special_defense"`
	Regen           int `json:"regen" yaml:"regen"`
	Mana            int `json:"mana" yaml:"mana"`
	Speed           int `json:"speed" yaml:"speed"`
	Pierce          int `json:"pierce" yaml:"pierce"`
}

// Sum is the "total" column shown in card listings.
func (s StatTable) Sum() int {
	return s.Health + s.PhysicalDamage + s.SpecialDamage + s.PhysicalDefense +
		s.SpecialDefense + s.Regen + s.Mana + s.Speed + s.Pierce
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

var rarityCosts = map[Rarity]int{
	RarityCommon:    2,
	RarityUncommon:  3,
	RarityRare:      4,
	RarityEpic:      5,
	RarityLegendary: 6,
	RarityMythic:    7,
}

// rarityAliases accepts the names used by the card sheets, accented or not.
var rarityAliases = map[string]Rarity{
	"comum":    RarityCommon,
	"incomum":  RarityUncommon,
	"raro":     RarityRare,
	"épico":    RarityEpic,
	"epico":    RarityEpic,
	"lendário": RarityLegendary,
	"lendario": RarityLegendary,
	"mítico":   RarityMythic,
	"mitico":   RarityMythic,
}

// ParseRarity normalizes a rarity label. Unknown labels fall back to common.
func ParseRarity(s string) Rarity {
	k := strings.ToLower(strings.TrimSpace(s))
	if _, ok := rarityCosts[Rarity(k)]; ok {
		return Rarity(k)
	}
	if r, ok := rarityAliases[k]; ok {
		return r
	}
	return RarityCommon
}

// Cost is the shop price for a card of this rarity.
func (r Rarity) Cost() int {
	if c, ok := rarityCosts[r]; ok {
		return c
	}
	return rarityCosts[RarityCommon]
}

// SellValue is what the bank refunds when a unit is sold.
func (r Rarity) SellValue() int {
	v := r.Cost() - 1
	if v < 0 {
		return 0
	}
	return v
}

// CardTemplate is the static definition of a card. Only the slug and name
// are persisted; everything else comes from the card list in the config
// file and is reattached by the repository on load.
type CardTemplate struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	Rarity    Rarity    `json:"rarity" gorm:"-"`
	Synergies []string  `json:"synergies" gorm:"-"`
	Stats     StatTable `json:"stats" gorm:"-"`
}

func (CardTemplate) TableName() string { return "card_templates" }

// Cost is a shorthand for the template's rarity cost.
func (c CardTemplate) Cost() int { return c.Rarity.Cost() }
