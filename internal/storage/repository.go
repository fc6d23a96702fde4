package storage

import (
	"time"

	"github.com/Leonn190/Roll/internal/game"
)

type Repository interface {
	GetCards() ([]game.CardTemplate, error)
	GetPublicMatches() ([]game.Match, error)
	CreateMatch(m *game.Match) error
	GetMatchByID(id uint) (*game.Match, error)
	FindMatchByJoinCode(code string) (*game.Match, error)
	UpdateMatch(m *game.Match) error
	// DeleteUnits removes units that left a player's roster (sold or
	// discarded by a shop reroll). UpdateMatch only inserts and updates.
	DeleteUnits(ids []uint) error
	RemovePlayerByEmail(matchID uint, email string) error
	GetBattleByMatchID(matchID uint) (*game.BattleRecord, error)
	UpsertUser(email, uuid, name string) error
	UpdateStatsOnMatchEnd(m *game.Match) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
	// FindExpiredDrafts returns matches still drafting whose draft deadline
	// is at or before now. The caller resolves their battles as-is.
	FindExpiredDrafts(now time.Time) ([]game.Match, error)
}
