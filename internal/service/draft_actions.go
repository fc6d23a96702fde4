package service

import (
	"github.com/Leonn190/Roll/internal/dice"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/grid"
	"github.com/Leonn190/Roll/internal/shop"
	"github.com/Leonn190/Roll/internal/stats"
)

// RerollShop pays for a new shop and deletes the discarded shop units.
func RerollShop(repo MatchRepo, matchID uint, email string, s Settings) (*game.Player, error) {
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return nil, err
	}
	removed, err := shop.Reroll(p, s.Catalog, s.Rules, s.rng(), false)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	if err := repo.DeleteUnits(removed); err != nil {
		return nil, err
	}
	return p, nil
}

// BuyUnit moves the unit shown in a shop slot to the bank.
func BuyUnit(repo MatchRepo, matchID uint, email string, slot int, s Settings) (*game.Unit, error) {
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return nil, err
	}
	u, err := shop.Buy(p, slot, s.Rules)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return u, nil
}

// SellUnit sells a bank or grid unit and returns the refund.
func SellUnit(repo MatchRepo, matchID uint, email string, unitID uint) (int, error) {
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return 0, err
	}
	if p.FindUnit(unitID) == nil {
		return 0, ErrUnitNotFound
	}
	refund, err := shop.Sell(p, unitID)
	if err != nil {
		return 0, err
	}
	if err := repo.UpdateMatch(m); err != nil {
		return 0, err
	}
	if err := repo.DeleteUnits([]uint{unitID}); err != nil {
		return 0, err
	}
	return refund, nil
}

func boardOf(p *game.Player, s Settings) *grid.Grid {
	return grid.FromUnits(s.GridCols, s.GridRows, p.UnitsAt(game.LocationGrid))
}

// PlaceUnit moves a bank unit onto the grid if the placement is legal.
func PlaceUnit(repo MatchRepo, matchID uint, email string, unitID uint, col, row int, s Settings) (*game.Unit, error) {
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return nil, err
	}
	u := p.FindUnit(unitID)
	if u == nil {
		return nil, ErrUnitNotFound
	}
	if u.Location != game.LocationBank {
		return nil, ErrUnitNotInBank
	}
	g := boardOf(p, s)
	if !g.CanPlace(u, col, row) {
		return nil, ErrIllegalPlacement
	}
	g.Place(u, col, row)
	u.Slot = 0
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return u, nil
}

// LiftUnit moves a grid unit back to the first free bank slot.
func LiftUnit(repo MatchRepo, matchID uint, email string, unitID uint, s Settings) (*game.Unit, error) {
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return nil, err
	}
	u := p.FindUnit(unitID)
	if u == nil {
		return nil, ErrUnitNotFound
	}
	if u.Location != game.LocationGrid {
		return nil, ErrUnitNotOnGrid
	}
	slot, ok := shop.FreeBankSlot(p, s.Rules)
	if !ok {
		return nil, shop.ErrBankFull
	}
	g := boardOf(p, s)
	g.Remove(u.Col, u.Row)
	u.Location = game.LocationBank
	u.Slot = slot
	u.Col, u.Row = 0, 0
	u.Featured = false
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidCells lists every grid cell where a bank unit could be placed.
func ValidCells(repo MatchRepo, matchID uint, email string, unitID uint, s Settings) ([]grid.Cell, error) {
	_, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return nil, err
	}
	u := p.FindUnit(unitID)
	if u == nil {
		return nil, ErrUnitNotFound
	}
	if u.Location != game.LocationBank {
		return nil, ErrUnitNotInBank
	}
	return boardOf(p, s).ValidCells(u), nil
}

// ToggleFeatured puts a grid unit in or out of a combat slot and returns
// whether it is featured afterwards.
func ToggleFeatured(repo MatchRepo, matchID uint, email string, unitID uint) (bool, error) {
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return false, err
	}
	u := p.FindUnit(unitID)
	if u == nil {
		return false, ErrUnitNotFound
	}
	if u.Location != game.LocationGrid {
		return false, ErrUnitNotOnGrid
	}
	if !u.Featured {
		n := 0
		for _, g := range p.UnitsAt(game.LocationGrid) {
			if g.Featured {
				n++
			}
		}
		if n >= stats.UnlockedCombatSlots {
			return false, ErrFeaturedSlotsFull
		}
	}
	u.Featured = !u.Featured
	if err := repo.UpdateMatch(m); err != nil {
		return false, err
	}
	return u.Featured, nil
}

// ToggleDie selects or deselects the die for an attribute and returns the
// active attributes.
func ToggleDie(repo MatchRepo, matchID uint, email string, attr game.Attribute) ([]game.Attribute, error) {
	if !game.ValidAttribute(attr) {
		return nil, ErrUnknownAttribute
	}
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return nil, err
	}
	h := dice.NewHand(p.Level, p.ActiveDice)
	h.Toggle(attr)
	p.ActiveDice = h.Active()
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return p.ActiveDice, nil
}

// Board is a player's current aggregate as shown during the draft.
type Board struct {
	Totals     game.Totals      `json:"totals"`
	MaxLife    int              `json:"max_life"`
	Synergies  map[string]int   `json:"synergies"`
	Featured   []uint           `json:"featured"`
	ActiveDice []game.Attribute `json:"active_dice"`
	Units      int              `json:"units"`
}

// BoardSummary aggregates the player's grid. It is read-only and stays
// available after the player is ready.
func BoardSummary(repo MatchRepo, matchID uint, email string, s Settings) (*Board, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	p := m.PlayerByEmail(email)
	if p == nil {
		return nil, ErrPlayerNotInMatch
	}
	g := boardOf(p, s)
	res := stats.NewTracker(p.PlayerName, g).Result()
	return &Board{
		Totals:     res.Totals,
		MaxLife:    res.MaxLife,
		Synergies:  res.Synergy,
		Featured:   res.Featured,
		ActiveDice: dice.NewHand(p.Level, p.ActiveDice).Active(),
		Units:      g.Len(),
	}, nil
}
