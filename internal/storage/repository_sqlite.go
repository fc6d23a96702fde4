package storage

import (
	"errors"
	"time"

	"github.com/Leonn190/Roll/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// configBySlug maps card slug -> config definition (rarity, tags, stats).
	configBySlug map[string]game.CardTemplate
	publicTTL    time.Duration
}

func NewSQLiteRepository(db *gorm.DB, configCards []game.CardTemplate, publicTTL time.Duration) Repository {
	m := make(map[string]game.CardTemplate, len(configCards))
	for _, c := range configCards {
		m[c.Slug] = c
	}
	if publicTTL <= 0 {
		publicTTL = 10 * time.Minute
	}
	return &sqliteRepository{db: db, configBySlug: m, publicTTL: publicTTL}
}

// GetCards lists the persisted cards that still exist in the config, with
// their config-owned fields attached.
func (r *sqliteRepository) GetCards() ([]game.CardTemplate, error) {
	var rows []game.CardTemplate
	if err := r.db.Order("slug").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]game.CardTemplate, 0, len(rows))
	for _, c := range rows {
		conf, ok := r.configBySlug[c.Slug]
		if !ok {
			continue
		}
		conf.ID = c.ID
		out = append(out, conf)
	}
	return out, nil
}

func (r *sqliteRepository) hydrate(m *game.Match) {
	for pi := range m.Players {
		p := &m.Players[pi]
		for ui := range p.Units {
			if conf, ok := r.configBySlug[p.Units[ui].CardSlug]; ok {
				p.Units[ui].Hydrate(conf)
			}
		}
	}
}

func (r *sqliteRepository) full() *gorm.DB {
	return r.db.
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Players.Units", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Battle")
}

func (r *sqliteRepository) CreateMatch(m *game.Match) error {
	return r.db.Create(m).Error
}

func (r *sqliteRepository) GetMatchByID(id uint) (*game.Match, error) {
	var m game.Match
	if err := r.full().First(&m, id).Error; err != nil {
		return nil, err
	}
	r.hydrate(&m)
	return &m, nil
}

func (r *sqliteRepository) FindMatchByJoinCode(code string) (*game.Match, error) {
	var m game.Match
	if err := r.full().Where("join_code = ?", code).First(&m).Error; err != nil {
		return nil, err
	}
	r.hydrate(&m)
	return &m, nil
}

func (r *sqliteRepository) UpdateMatch(m *game.Match) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(m).Error
}

func (r *sqliteRepository) DeleteUnits(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&game.Unit{}, ids).Error
}

func (r *sqliteRepository) GetPublicMatches() ([]game.Match, error) {
	var matches []game.Match
	since := time.Now().Add(-r.publicTTL)
	if err := r.db.Preload("Players").
		Where("private = ? AND status = ? AND created_at > ?", false, game.StatusWaitingForPlayers, since).
		Order("created_at desc").Find(&matches).Error; err != nil {
		return nil, err
	}
	// Only return matches with at least one player
	filtered := make([]game.Match, 0, len(matches))
	for i := range matches {
		if len(matches[i].Players) >= 1 {
			filtered = append(filtered, matches[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) RemovePlayerByEmail(matchID uint, email string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var p game.Player
		if err := tx.Where("match_id = ? AND player_email = ?", matchID, email).First(&p).Error; err != nil {
			return err
		}
		if err := tx.Where("player_id = ?", p.ID).Delete(&game.Unit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

func (r *sqliteRepository) GetBattleByMatchID(matchID uint) (*game.BattleRecord, error) {
	var b game.BattleRecord
	if err := r.db.Where("match_id = ?", matchID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateStatsOnMatchEnd counts a played match for both participants, plus a
// win for the winner or a draw for both.
func (r *sqliteRepository) UpdateStatsOnMatchEnd(m *game.Match) error {
	if len(m.Players) != 2 {
		return nil
	}
	draw := m.Battle != nil && m.Battle.Draw
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range m.Players {
			var u game.User
			if err := tx.Where("email = ?", p.PlayerEmail).First(&u).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				u = game.User{Email: p.PlayerEmail}
			}
			u.PlayerName = p.PlayerName
			u.PlayerUUID = p.PlayerUUID
			u.GamesPlayed++
			switch {
			case draw:
				u.Draws++
			case m.Winner != "" && m.Winner == p.PlayerName:
				u.Wins++
			}
			if err := tx.Save(&u).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var ps game.User
	if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &ps, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		u = game.User{Email: email}
	}
	u.PlayerName = name
	u.PlayerUUID = uuid
	return r.db.Save(&u).Error
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) FindExpiredDrafts(now time.Time) ([]game.Match, error) {
	var matches []game.Match
	if err := r.full().
		Where("status = ? AND phase = ? AND draft_deadline <= ?", game.StatusDrafting, game.PhaseDraft, now).
		Find(&matches).Error; err != nil {
		return nil, err
	}
	for i := range matches {
		r.hydrate(&matches[i])
	}
	return matches, nil
}
