package game

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	StatusWaitingForPlayers = "waiting_for_players"
	StatusDrafting          = "drafting"
	StatusFinished          = "finished"

	PhaseDraft    = "draft"
	PhaseBattle   = "battle"
	PhaseResolved = "resolved"
)

// Location says where a unit currently lives. A unit is always in exactly
// one of them.
type Location string

const (
	LocationBank Location = "bank"
	LocationShop Location = "shop"
	LocationGrid Location = "grid"
)

// MaxStars caps unit evolution.
const MaxStars = 3

// Unit is one owned copy of a card. Rarity, synergies and stats are
// reattached from the card list when the unit is loaded.
type Unit struct {
	gorm.Model
	PlayerID  uint      `json:"-"`
	CardSlug  string    `json:"card_slug"`
	Name      string    `json:"name"`
	Stars     int       `json:"stars"`
	Location  Location  `json:"location"`
	Slot      int       `json:"slot"`
	Col       int       `json:"col"`
	Row       int       `json:"row"`
	Featured  bool      `json:"featured"`
	Rarity    Rarity    `json:"rarity" gorm:"-"`
	Synergies []string  `json:"synergies" gorm:"-"`
	Stats     StatTable `json:"stats" gorm:"-"`
}

func (Unit) TableName() string { return "match_units" }

// NewUnit creates an unplaced unit from a card template.
func NewUnit(c CardTemplate) Unit {
	syn := make([]string, len(c.Synergies))
	copy(syn, c.Synergies)
	return Unit{
		CardSlug:  c.Slug,
		Name:      c.Name,
		Rarity:    c.Rarity,
		Synergies: syn,
		Stats:     c.Stats,
		Location:  LocationBank,
	}
}

// Identity is the key used to reject duplicate units on one grid.
func (u *Unit) Identity() string {
	if u.CardSlug != "" {
		return u.CardSlug
	}
	return strings.ToLower(strings.TrimSpace(u.Name))
}

// ClampedStars returns Stars limited to 0..MaxStars.
func (u *Unit) ClampedStars() int {
	switch {
	case u.Stars < 0:
		return 0
	case u.Stars > MaxStars:
		return MaxStars
	}
	return u.Stars
}

// Hydrate copies the config-owned fields of a template onto the unit.
func (u *Unit) Hydrate(c CardTemplate) {
	u.Name = c.Name
	u.Rarity = c.Rarity
	u.Synergies = append(u.Synergies[:0], c.Synergies...)
	u.Stats = c.Stats
}

type Player struct {
	gorm.Model
	MatchID     uint        `json:"-"`
	PlayerUUID  string      `json:"player_uuid"`
	PlayerName  string      `json:"player_name"`
	PlayerEmail string      `json:"player_email"`
	Gold        int         `json:"gold"`
	Level       int         `json:"level"`
	Rerolls     int         `json:"rerolls"`
	Ready       bool        `json:"ready"`
	ActiveDice  []Attribute `json:"active_dice" gorm:"serializer:json"`
	// Deck holds the card slugs this player can still draw from the shop.
	Deck  []string `json:"-" gorm:"serializer:json"`
	Units []Unit   `json:"units"`
}

func (Player) TableName() string { return "match_players" }

// UnitsAt returns pointers to the units currently in loc.
func (p *Player) UnitsAt(loc Location) []*Unit {
	out := make([]*Unit, 0, len(p.Units))
	for i := range p.Units {
		if p.Units[i].Location == loc {
			out = append(out, &p.Units[i])
		}
	}
	return out
}

// FindUnit returns the unit with the given ID owned by this player.
func (p *Player) FindUnit(id uint) *Unit {
	for i := range p.Units {
		if p.Units[i].ID == id {
			return &p.Units[i]
		}
	}
	return nil
}

type Match struct {
	gorm.Model
	Name          string        `json:"name" gorm:"size:32"`
	Description   string        `json:"description" gorm:"size:256"`
	Private       bool          `json:"private"`
	JoinCode      string        `json:"join_code" gorm:"unique"`
	Players       []Player      `json:"players"`
	Status        string        `json:"status"`
	Phase         string        `json:"phase"`
	Winner        string        `json:"winner"`
	Message       string        `json:"message"`
	RoundCount    int           `json:"round_count"`
	DraftDeadline time.Time     `json:"draft_deadline"`
	StatsCounted  bool          `json:"-"`
	Battle        *BattleRecord `json:"battle,omitempty"`
}

// PlayerByEmail returns the participant with the given email, or nil.
func (m *Match) PlayerByEmail(email string) *Player {
	for i := range m.Players {
		if m.Players[i].PlayerEmail == email {
			return &m.Players[i]
		}
	}
	return nil
}

// RoundLog is the persisted record of one resolved round.
type RoundLog struct {
	Round        int            `json:"round"`
	LifeBefore   map[string]int `json:"life_before"`
	Entries      []LogEntry     `json:"entries"`
	InitialOrder [2]string      `json:"initial_order"`
	Winner       string         `json:"winner"`
}

// BattleRecord stores a finished battle for replay.
type BattleRecord struct {
	gorm.Model
	MatchID   uint       `json:"-" gorm:"uniqueIndex"`
	Host      string     `json:"host"`
	Guest     string     `json:"guest"`
	Winner    string     `json:"winner"`
	Draw      bool       `json:"draw"`
	Rounds    int        `json:"rounds"`
	HostLife  int        `json:"host_life"`
	GuestLife int        `json:"guest_life"`
	Log       []RoundLog `json:"log" gorm:"serializer:json"`
}

func (BattleRecord) TableName() string { return "battle_records" }

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID  string `gorm:"index"`
	PlayerName  string
	Email       string `gorm:"uniqueIndex"`
	GamesPlayed int
	Wins        int
	Draws       int
}

func (User) TableName() string { return "player_profiles" }
