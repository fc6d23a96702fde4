package service

import (
	"time"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/shop"
)

// StartMatch performs all server-side initialization when starting a
// match: every player gets a fresh deck, a random starting bank, a free
// first shop and the starting gold. The provided match is modified and
// persisted using the repository.
func StartMatch(repo interface{ UpdateMatch(*game.Match) error }, m *game.Match, s Settings) error {
	if m.Status != game.StatusWaitingForPlayers {
		return ErrMatchAlreadyStarted
	}
	if len(m.Players) != 2 {
		return ErrNotEnoughPlayers
	}

	rng := s.rng()
	for i := range m.Players {
		p := &m.Players[i]
		p.Gold = s.Rules.StartingGold
		p.Level = 1
		p.Rerolls = 0
		p.Ready = false
		p.ActiveDice = nil
		p.Units = nil
		p.Deck = s.Catalog.NewDeck()
		shop.DealStartingBank(p, s.Catalog, s.Rules, rng)
		if _, err := shop.Reroll(p, s.Catalog, s.Rules, rng, true); err != nil {
			return err
		}
		logging.Info("starting roster dealt", logging.Fields{
			constants.LogFieldMatchID: m.ID,
			constants.LogFieldPlayer:  p.PlayerName,
			"bank":                    len(p.UnitsAt(game.LocationBank)),
			"deck":                    len(p.Deck),
		})
	}

	m.Status = game.StatusDrafting
	m.Phase = game.PhaseDraft
	m.RoundCount = 1
	m.Winner = ""
	m.DraftDeadline = time.Now().Add(s.draftTimeout())
	m.Message = "The draft has started. Build your board."

	return repo.UpdateMatch(m)
}
