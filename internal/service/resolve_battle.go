package service

import (
	"context"
	"fmt"

	"github.com/Leonn190/Roll/internal/battle"
	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/dedupe"
	"github.com/Leonn190/Roll/internal/dice"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/keys"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/stats"
)

// SetReady locks the player's roster. When both players are ready the
// battle is resolved and the finished match is returned with resolved set.
func SetReady(ctx context.Context, repo MatchRepo, matchID uint, email string, s Settings) (*game.Match, bool, error) {
	m, p, err := loadDraft(repo, matchID, email)
	if err != nil {
		return nil, false, err
	}
	p.Ready = true
	if len(m.Players) != 2 || !m.Players[0].Ready || !m.Players[1].Ready {
		if err := repo.UpdateMatch(m); err != nil {
			return nil, false, err
		}
		return m, false, nil
	}
	out, err := ResolveBattle(ctx, repo, m, s)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// ResolveBattle runs the battle for a drafting match and persists the
// outcome. Concurrent calls for the same match share one resolution.
func ResolveBattle(ctx context.Context, repo MatchRepo, m *game.Match, s Settings) (*game.Match, error) {
	names := make([]string, 0, len(m.Players))
	for _, p := range m.Players {
		names = append(names, p.PlayerEmail)
	}
	key := keys.MatchupKey(m.JoinCode, names)
	v, err, shared := dedupe.BattleGroup.Do(key, func() (interface{}, error) {
		return resolve(ctx, repo, m, s)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.Info("battle resolution shared", logging.Fields{constants.LogFieldMatchID: m.ID, constants.LogFieldKey: key})
	}
	return v.(*game.Match), nil
}

func resolve(ctx context.Context, repo MatchRepo, m *game.Match, s Settings) (*game.Match, error) {
	if m.Status != game.StatusDrafting {
		return m, nil
	}
	if len(m.Players) != 2 {
		finish(m, "", "Match ended without an opponent")
		return m, repo.UpdateMatch(m)
	}

	host, guest := &m.Players[0], &m.Players[1]
	hostGrid, guestGrid := boardOf(host, s), boardOf(guest, s)
	m.Phase = game.PhaseBattle

	switch {
	case hostGrid.Len() == 0 && guestGrid.Len() == 0:
		finish(m, "", "Match ended due to inactivity")
		m.StatsCounted = true
		logging.Info("no boards placed; finishing match", logging.Fields{constants.LogFieldMatchID: m.ID})
		return m, repo.UpdateMatch(m)
	case guestGrid.Len() == 0:
		return forfeit(repo, m, host, guest)
	case hostGrid.Len() == 0:
		return forfeit(repo, m, guest, host)
	}

	rng := s.rng()
	hostName, guestName := combatantNames(host, guest)
	a := combatant(host, stats.NewTracker(hostName, hostGrid), rng, s)
	d := combatant(guest, stats.NewTracker(guestName, guestGrid), rng, s)

	res, err := battle.NewController(rng, s.MaxRounds).Run(ctx, a, d)
	if err != nil {
		// leave the match drafting so the timeout scanner retries it
		m.Phase = game.PhaseDraft
		return nil, err
	}

	winner := ""
	switch res.Winner {
	case hostName:
		winner = host.PlayerName
	case guestName:
		winner = guest.PlayerName
	}
	m.Battle = &game.BattleRecord{
		MatchID:   m.ID,
		Host:      hostName,
		Guest:     guestName,
		Winner:    res.Winner,
		Draw:      res.Draw,
		Rounds:    len(res.Rounds),
		HostLife:  a.Life,
		GuestLife: d.Life,
		Log:       res.Rounds,
	}
	m.RoundCount = len(res.Rounds)
	msg := fmt.Sprintf("%s wins after %d rounds", winner, len(res.Rounds))
	if res.Draw {
		msg = fmt.Sprintf("Draw after %d rounds", len(res.Rounds))
	}
	finish(m, winner, msg)
	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldMatchID: m.ID,
		constants.LogFieldRounds:  len(res.Rounds),
		constants.LogFieldWinner:  winner,
	})
	return m, saveFinished(repo, m)
}

// combatant builds one side: star-scaled board totals plus rolled dice.
func combatant(p *game.Player, t *stats.Tracker, rng Rand, s Settings) *game.Combatant {
	c := t.Combatant()
	sums := dice.RollAll(rng, dice.NewHand(p.Level, p.ActiveDice).Dice(s.DiceFaces))
	dice.Apply(c, sums)
	return c
}

// combatantNames keeps the two sides apart in the log when both players
// chose the same display name.
func combatantNames(host, guest *game.Player) (string, string) {
	h, g := host.PlayerName, guest.PlayerName
	if h == "" {
		h = "Host"
	}
	if g == "" {
		g = "Guest"
	}
	if h == g {
		g += " (2)"
	}
	return h, g
}

func forfeit(repo MatchRepo, m *game.Match, winner, loser *game.Player) (*game.Match, error) {
	m.Battle = &game.BattleRecord{MatchID: m.ID, Host: m.Players[0].PlayerName, Guest: m.Players[1].PlayerName, Winner: winner.PlayerName}
	finish(m, winner.PlayerName, fmt.Sprintf("%s wins: %s placed no units", winner.PlayerName, loser.PlayerName))
	return m, saveFinished(repo, m)
}

func finish(m *game.Match, winner, msg string) {
	m.Status = game.StatusFinished
	m.Phase = game.PhaseResolved
	m.Winner = winner
	m.Message = msg
}

func saveFinished(repo MatchRepo, m *game.Match) error {
	if !m.StatsCounted {
		if err := repo.UpdateStatsOnMatchEnd(m); err != nil {
			logging.Error("failed to update player stats", err, logging.Fields{constants.LogFieldMatchID: m.ID})
		}
		m.StatsCounted = true
	}
	return repo.UpdateMatch(m)
}
