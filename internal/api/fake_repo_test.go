package api

import (
	"errors"
	"sort"
	"time"

	"github.com/Leonn190/Roll/internal/game"
)

var errNotFound = errors.New("not found")

// fakeRepo keeps matches in memory and hands out ids the way the database
// would on save.
type fakeRepo struct {
	cards   []game.CardTemplate
	matches map[uint]*game.Match
	users   map[string]*game.User
	nextID  uint
	deleted []uint
}

func newFakeRepo(cards []game.CardTemplate) *fakeRepo {
	return &fakeRepo{cards: cards, matches: map[uint]*game.Match{}, users: map[string]*game.User{}}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) assignIDs(m *game.Match) {
	for pi := range m.Players {
		p := &m.Players[pi]
		if p.ID == 0 {
			p.ID = r.id()
		}
		for ui := range p.Units {
			if p.Units[ui].ID == 0 {
				p.Units[ui].ID = r.id()
			}
		}
	}
}

func (r *fakeRepo) GetCards() ([]game.CardTemplate, error) { return r.cards, nil }

func (r *fakeRepo) GetPublicMatches() ([]game.Match, error) {
	var out []game.Match
	for _, m := range r.matches {
		if !m.Private && m.Status == game.StatusWaitingForPlayers {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateMatch(m *game.Match) error {
	m.ID = r.id()
	r.assignIDs(m)
	r.matches[m.ID] = m
	return nil
}

func (r *fakeRepo) GetMatchByID(id uint) (*game.Match, error) {
	if m, ok := r.matches[id]; ok {
		return m, nil
	}
	return nil, errNotFound
}

func (r *fakeRepo) FindMatchByJoinCode(code string) (*game.Match, error) {
	for _, m := range r.matches {
		if m.JoinCode == code {
			return m, nil
		}
	}
	return nil, errNotFound
}

func (r *fakeRepo) UpdateMatch(m *game.Match) error {
	r.assignIDs(m)
	r.matches[m.ID] = m
	return nil
}

func (r *fakeRepo) DeleteUnits(ids []uint) error {
	r.deleted = append(r.deleted, ids...)
	return nil
}

func (r *fakeRepo) RemovePlayerByEmail(matchID uint, email string) error { return nil }

func (r *fakeRepo) GetBattleByMatchID(matchID uint) (*game.BattleRecord, error) {
	m, ok := r.matches[matchID]
	if !ok || m.Battle == nil {
		return nil, errNotFound
	}
	return m.Battle, nil
}

func (r *fakeRepo) UpsertUser(email, uuid, name string) error {
	u, ok := r.users[email]
	if !ok {
		u = &game.User{Email: email}
		r.users[email] = u
	}
	u.PlayerUUID, u.PlayerName = uuid, name
	return nil
}

func (r *fakeRepo) UpdateStatsOnMatchEnd(m *game.Match) error {
	for _, p := range m.Players {
		u, ok := r.users[p.PlayerEmail]
		if !ok {
			continue
		}
		u.GamesPlayed++
		if m.Winner == p.PlayerName {
			u.Wins++
		}
	}
	return nil
}

func (r *fakeRepo) GetStatsByEmail(email string) (*game.User, error) {
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return &game.User{Email: email}, nil
}

func (r *fakeRepo) SaveUser(u *game.User) error {
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeRepo) GetTopPlayers(limit int) ([]game.User, error) {
	out := make([]game.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) FindExpiredDrafts(now time.Time) ([]game.Match, error) { return nil, nil }
