package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/shop"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrPlayerNotInMatch    = errors.New("player not in match")
	ErrMatchNotDrafting    = errors.New("match is not in the draft phase")
	ErrPlayerAlreadyReady  = errors.New("player is already ready")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrUnitNotInBank       = errors.New("unit is not in the bank")
	ErrUnitNotOnGrid       = errors.New("unit is not on the grid")
	ErrIllegalPlacement    = errors.New("unit cannot be placed there")
	ErrFeaturedSlotsFull   = errors.New("all unlocked combat slots are taken")
	ErrUnknownAttribute    = errors.New("unknown attribute")
	ErrNotEnoughPlayers    = errors.New("not enough players to start the match")
	ErrMatchAlreadyStarted = errors.New("match is already starting or started")
)

// MatchRepo is the minimal repository interface the draft and battle
// services need.
type MatchRepo interface {
	GetMatchByID(id uint) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	DeleteUnits(ids []uint) error
	UpdateStatsOnMatchEnd(m *game.Match) error
}

// Rand covers every random draw a match makes: hit and crit rolls, dice
// faces and deck shuffles. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand uses the math/rand package functions, which are safe for
// concurrent handlers.
type globalRand struct{}

func (globalRand) Float64() float64                   { return rand.Float64() }
func (globalRand) Intn(n int) int                     { return rand.Intn(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Settings carries the configured game tuning into the services.
type Settings struct {
	Catalog      shop.Catalog
	Rules        shop.Rules
	GridCols     int
	GridRows     int
	MaxRounds    int
	DiceFaces    []int
	DraftTimeout time.Duration
	Rand         Rand
}

func (s Settings) rng() Rand {
	if s.Rand == nil {
		return globalRand{}
	}
	return s.Rand
}

func (s Settings) draftTimeout() time.Duration {
	if s.DraftTimeout <= 0 {
		return 5 * time.Minute
	}
	return s.DraftTimeout
}

// loadDraft fetches a match in its draft phase together with the acting
// player. Ready players can no longer change their roster.
func loadDraft(repo MatchRepo, matchID uint, email string) (*game.Match, *game.Player, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, nil, ErrMatchNotFound
	}
	p := m.PlayerByEmail(email)
	if p == nil {
		return nil, nil, ErrPlayerNotInMatch
	}
	if m.Status != game.StatusDrafting || m.Phase != game.PhaseDraft {
		return nil, nil, ErrMatchNotDrafting
	}
	if p.Ready {
		return nil, nil, ErrPlayerAlreadyReady
	}
	return m, p, nil
}
