package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/shop"
)

type mockRepo struct {
	matches     map[uint]*game.Match
	updated     *game.Match
	deleted     []uint
	statsCalled bool
}

func newMockRepo(m *game.Match) *mockRepo {
	if m.ID == 0 {
		m.ID = 1
	}
	return &mockRepo{matches: map[uint]*game.Match{m.ID: m}}
}

func (m *mockRepo) GetMatchByID(id uint) (*game.Match, error) {
	if g, ok := m.matches[id]; ok {
		return g, nil
	}
	return nil, ErrMatchNotFound
}

func (m *mockRepo) UpdateMatch(g *game.Match) error {
	m.updated = g
	return nil
}

func (m *mockRepo) DeleteUnits(ids []uint) error {
	m.deleted = append(m.deleted, ids...)
	return nil
}

func (m *mockRepo) UpdateStatsOnMatchEnd(g *game.Match) error {
	m.statsCalled = true
	return nil
}

func testCatalog() shop.Catalog {
	tags := []string{"beast", "air", "water"}
	cards := make([]game.CardTemplate, 0, 12)
	for i := 0; i < 12; i++ {
		cards = append(cards, game.CardTemplate{
			Slug:      fmt.Sprintf("card_%02d", i),
			Name:      fmt.Sprintf("CARD %02d", i),
			Rarity:    game.RarityCommon,
			Synergies: []string{tags[i%3]},
			Stats:     game.StatTable{Health: 50, PhysicalDamage: 5, Speed: 5},
		})
	}
	return shop.NewCatalog(cards)
}

func testSettings(seed int64) Settings {
	return Settings{
		Catalog:      testCatalog(),
		Rules:        shop.DefaultRules(),
		GridCols:     10,
		GridRows:     10,
		MaxRounds:    20,
		DraftTimeout: time.Minute,
		Rand:         rand.New(rand.NewSource(seed)),
	}
}

func bankUnit(id uint, slug string, slot int, tags ...string) game.Unit {
	u := game.Unit{
		CardSlug:  slug,
		Name:      slug,
		Rarity:    game.RarityCommon,
		Synergies: tags,
		Location:  game.LocationBank,
		Slot:      slot,
		Stats:     game.StatTable{Health: 100, PhysicalDamage: 30, Speed: 10},
	}
	u.ID = id
	return u
}

func gridUnit(id uint, slug string, col, row int, tags ...string) game.Unit {
	u := bankUnit(id, slug, 0, tags...)
	u.Location = game.LocationGrid
	u.Col, u.Row = col, row
	return u
}

func draftingMatch(code string) *game.Match {
	return &game.Match{
		JoinCode: code,
		Status:   game.StatusDrafting,
		Phase:    game.PhaseDraft,
		Players: []game.Player{
			{PlayerName: "A", PlayerEmail: "a@e.com", Level: 1, Gold: 10},
			{PlayerName: "B", PlayerEmail: "b@e.com", Level: 1, Gold: 10},
		},
	}
}

func TestStartMatch_DealsRosters(t *testing.T) {
	m := &game.Match{Status: game.StatusWaitingForPlayers, Players: []game.Player{{PlayerName: "A"}, {PlayerName: "B"}}}
	mr := newMockRepo(m)
	s := testSettings(3)
	if err := StartMatch(mr, m, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != game.StatusDrafting || m.Phase != game.PhaseDraft || !m.DraftDeadline.After(time.Now()) {
		t.Fatalf("match not moved to the draft: %+v", m)
	}
	for _, p := range m.Players {
		if n := len(p.UnitsAt(game.LocationBank)); n != 8 {
			t.Fatalf("expected 8 bank units, got %d", n)
		}
		if n := len(p.UnitsAt(game.LocationShop)); n != 3 {
			t.Fatalf("expected 3 shop units, got %d", n)
		}
		if p.Gold != 10 || len(p.Deck) != 9 {
			t.Fatalf("expected free first shop from a full deck, gold=%d deck=%d", p.Gold, len(p.Deck))
		}
	}
	if err := StartMatch(mr, m, s); !errors.Is(err, ErrMatchAlreadyStarted) {
		t.Fatalf("expected ErrMatchAlreadyStarted, got %v", err)
	}
	lonely := &game.Match{Status: game.StatusWaitingForPlayers, Players: []game.Player{{PlayerName: "A"}}}
	if err := StartMatch(mr, lonely, s); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
}

func TestPlaceUnit_ChecksLegality(t *testing.T) {
	m := draftingMatch("PLACE001")
	m.Players[0].Units = []game.Unit{
		bankUnit(1, "wolf", 0, "beast"),
		bankUnit(2, "owl", 1, "air"),
		bankUnit(3, "bear", 2, "beast"),
	}
	mr := newMockRepo(m)
	s := testSettings(1)

	if _, err := PlaceUnit(mr, m.ID, "a@e.com", 1, 4, 4, s); err != nil {
		t.Fatalf("first placement failed: %v", err)
	}
	if _, err := PlaceUnit(mr, m.ID, "a@e.com", 2, 5, 4, s); !errors.Is(err, ErrIllegalPlacement) {
		t.Fatalf("expected ErrIllegalPlacement, got %v", err)
	}
	u, err := PlaceUnit(mr, m.ID, "a@e.com", 3, 5, 4, s)
	if err != nil {
		t.Fatalf("shared tag placement failed: %v", err)
	}
	if u.Location != game.LocationGrid || u.Col != 5 || u.Row != 4 {
		t.Fatalf("unit not on grid: %+v", u)
	}
	if _, err := PlaceUnit(mr, m.ID, "a@e.com", 3, 6, 4, s); !errors.Is(err, ErrUnitNotInBank) {
		t.Fatalf("expected ErrUnitNotInBank, got %v", err)
	}
	if _, err := PlaceUnit(mr, m.ID, "z@e.com", 2, 0, 0, s); !errors.Is(err, ErrPlayerNotInMatch) {
		t.Fatalf("expected ErrPlayerNotInMatch, got %v", err)
	}

	cells, err := ValidCells(mr, m.ID, "a@e.com", 2, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 0 {
		t.Fatalf("an air unit has no legal cell next to a beast chain, got %v", cells)
	}
}

func TestLiftAndFeature(t *testing.T) {
	m := draftingMatch("LIFT0001")
	m.Players[0].Units = []game.Unit{
		gridUnit(1, "wolf", 0, 0, "beast"),
		gridUnit(2, "bear", 1, 0, "beast"),
		gridUnit(3, "boar", 2, 0, "beast"),
	}
	mr := newMockRepo(m)
	s := testSettings(1)

	for _, id := range []uint{1, 2} {
		if on, err := ToggleFeatured(mr, m.ID, "a@e.com", id); err != nil || !on {
			t.Fatalf("featuring %d failed: %v", id, err)
		}
	}
	if _, err := ToggleFeatured(mr, m.ID, "a@e.com", 3); !errors.Is(err, ErrFeaturedSlotsFull) {
		t.Fatalf("expected ErrFeaturedSlotsFull, got %v", err)
	}

	u, err := LiftUnit(mr, m.ID, "a@e.com", 1, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Location != game.LocationBank || u.Featured {
		t.Fatalf("lifted unit must be an unfeatured bank unit: %+v", u)
	}
	if _, err := LiftUnit(mr, m.ID, "a@e.com", 1, s); !errors.Is(err, ErrUnitNotOnGrid) {
		t.Fatalf("expected ErrUnitNotOnGrid, got %v", err)
	}
	if on, err := ToggleFeatured(mr, m.ID, "a@e.com", 3); err != nil || !on {
		t.Fatalf("a freed slot must be reusable: %v", err)
	}
}

func TestToggleDie(t *testing.T) {
	m := draftingMatch("DICE0001")
	mr := newMockRepo(m)
	if _, err := ToggleDie(mr, m.ID, "a@e.com", game.AttrSpeed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, err := ToggleDie(mr, m.ID, "a@e.com", game.AttrMana)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0] != game.AttrMana {
		t.Fatalf("level 1 holds one die, got %v", active)
	}
	if _, err := ToggleDie(mr, m.ID, "a@e.com", game.Attribute("luck")); !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}
}

func TestSellAndReroll_DeleteUnits(t *testing.T) {
	m := draftingMatch("SELL0001")
	m.Players[0].Units = []game.Unit{bankUnit(5, "card_00", 0, "beast")}
	mr := newMockRepo(m)
	s := testSettings(2)

	refund, err := SellUnit(mr, m.ID, "a@e.com", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refund != 1 || m.Players[0].Gold != 11 {
		t.Fatalf("common sells for 1, got refund %d gold %d", refund, m.Players[0].Gold)
	}
	if len(mr.deleted) != 1 || mr.deleted[0] != 5 {
		t.Fatalf("sold unit must be deleted, got %v", mr.deleted)
	}
	if _, err := SellUnit(mr, m.ID, "a@e.com", 5); !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("expected ErrUnitNotFound, got %v", err)
	}

	shown := bankUnit(9, "card_01", 0, "air")
	shown.Location = game.LocationShop
	m.Players[0].Units = append(m.Players[0].Units, shown)
	m.Players[0].Deck = s.Catalog.NewDeck()
	if _, err := RerollShop(mr, m.ID, "a@e.com", s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mr.deleted) != 2 || mr.deleted[1] != 9 {
		t.Fatalf("discarded shop unit must be deleted, got %v", mr.deleted)
	}
	if m.Players[0].Gold != 10 {
		t.Fatalf("paid reroll costs 1, gold=%d", m.Players[0].Gold)
	}
}

func TestSetReady_ResolvesWhenBothReady(t *testing.T) {
	m := draftingMatch("READY001")
	m.Players[0].Units = []game.Unit{gridUnit(1, "brute", 3, 3, "beast")}
	weak := gridUnit(2, "sprout", 3, 3, "plant")
	weak.Stats = game.StatTable{Health: 20, PhysicalDamage: 1, Speed: 1}
	m.Players[1].Units = []game.Unit{weak}
	mr := newMockRepo(m)
	s := testSettings(4)

	_, resolved, err := SetReady(context.Background(), mr, m.ID, "a@e.com", s)
	if err != nil || resolved {
		t.Fatalf("battle must wait for both players: resolved=%v err=%v", resolved, err)
	}
	if _, err := BuyUnit(mr, m.ID, "a@e.com", 0, s); !errors.Is(err, ErrPlayerAlreadyReady) {
		t.Fatalf("expected ErrPlayerAlreadyReady, got %v", err)
	}

	out, resolved, err := SetReady(context.Background(), mr, m.ID, "b@e.com", s)
	if err != nil || !resolved {
		t.Fatalf("expected resolution: resolved=%v err=%v", resolved, err)
	}
	if out.Status != game.StatusFinished || out.Winner != "A" || out.Battle == nil {
		t.Fatalf("expected A to win, got %+v", out)
	}
	if out.Battle.Rounds != 1 || out.Battle.GuestLife != 0 || len(out.Battle.Log) != 1 {
		t.Fatalf("unexpected battle record %+v", out.Battle)
	}
	if !mr.statsCalled || !out.StatsCounted {
		t.Fatalf("stats must be counted once")
	}
	if _, _, err := SetReady(context.Background(), mr, m.ID, "b@e.com", s); !errors.Is(err, ErrMatchNotDrafting) {
		t.Fatalf("expected ErrMatchNotDrafting, got %v", err)
	}
}

func TestBoardSummary(t *testing.T) {
	m := draftingMatch("BOARD001")
	m.Players[0].Units = []game.Unit{
		gridUnit(1, "wolf", 0, 0, "beast"),
		gridUnit(2, "bear", 1, 0, "Beast "),
		bankUnit(3, "owl", 0, "air"),
	}
	m.Players[0].ActiveDice = []game.Attribute{game.AttrRegen}
	mr := newMockRepo(m)
	b, err := BoardSummary(mr, m.ID, "a@e.com", testSettings(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Units != 2 || b.MaxLife != 200 || b.Totals[game.AttrPhysicalDamage] != 60 {
		t.Fatalf("unexpected board %+v", b)
	}
	if b.Synergies["beast"] != 2 || len(b.ActiveDice) != 1 {
		t.Fatalf("unexpected synergies/dice %+v", b)
	}
}
