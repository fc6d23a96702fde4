package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/service"
	"github.com/Leonn190/Roll/internal/shop"
	"github.com/gin-gonic/gin"
)

func testCards() []game.CardTemplate {
	tags := []string{"brawler", "sniper", "tank"}
	cards := make([]game.CardTemplate, 0, 12)
	for i := 0; i < 12; i++ {
		cards = append(cards, game.CardTemplate{
			Slug:      fmt.Sprintf("card_%02d", i),
			Name:      fmt.Sprintf("CARD %02d", i),
			Rarity:    game.RarityCommon,
			Synergies: []string{tags[i%3]},
			Stats:     game.StatTable{Health: 80, PhysicalDamage: 10, Speed: 5},
		})
	}
	return cards
}

type testServer struct {
	t      *testing.T
	repo   *fakeRepo
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("SESSION_SECRET", "test-secret")
	cards := testCards()
	repo := newFakeRepo(cards)
	settings := service.Settings{
		Catalog:      shop.NewCatalog(cards),
		Rules:        shop.DefaultRules(),
		GridCols:     10,
		GridRows:     10,
		MaxRounds:    20,
		DiceFaces:    []int{1, 2, 3, 4, 5, 6},
		DraftTimeout: time.Minute,
		Rand:         rand.New(rand.NewSource(3)),
	}
	return &testServer{t: t, repo: repo, router: NewRouter(repo, settings)}
}

func (s *testServer) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) guest(name string) *http.Cookie {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/guest", gin.H{"name": name}, nil)
	if rec.Code != http.StatusOK {
		s.t.Fatalf("guest login: %d %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "roll_session" {
			return c
		}
	}
	s.t.Fatalf("no session cookie set")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	s := newTestServer(t)
	if rec := s.do(http.MethodPost, "/api/matches", gin.H{}, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	bad := &http.Cookie{Name: "roll_session", Value: "not-a-token"}
	if rec := s.do(http.MethodGet, "/api/player-stats", nil, bad); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}
}

func TestMatchFlow_CreateJoinStartDraftReady(t *testing.T) {
	s := newTestServer(t)
	alice := s.guest("Alice")
	bob := s.guest("Bob")

	rec := s.do(http.MethodPost, "/api/matches", gin.H{"name": "friendly"}, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	code := decode(t, rec)["join_code"].(string)

	if rec := s.do(http.MethodPost, "/api/matches/join", gin.H{"join_code": code}, bob); rec.Code != http.StatusOK {
		t.Fatalf("join: %d %s", rec.Code, rec.Body.String())
	}
	carol := s.guest("Carol")
	if rec := s.do(http.MethodPost, "/api/matches/join", gin.H{"join_code": code}, carol); rec.Code != http.StatusConflict {
		t.Fatalf("third player must be rejected, got %d", rec.Code)
	}
	if rec := s.do(http.MethodPost, "/api/matches/"+code+"/start", nil, bob); rec.Code != http.StatusForbidden {
		t.Fatalf("only the host may start, got %d", rec.Code)
	}
	if rec := s.do(http.MethodPost, "/api/matches/"+code+"/start", nil, alice); rec.Code != http.StatusOK {
		t.Fatalf("start: %d %s", rec.Code, rec.Body.String())
	}

	m, _ := s.repo.FindMatchByJoinCode(code)
	if m.Status != game.StatusDrafting {
		t.Fatalf("expected drafting, got %s", m.Status)
	}
	bank := m.Players[0].UnitsAt(game.LocationBank)
	if len(bank) != 8 || len(m.Players[0].UnitsAt(game.LocationShop)) != 3 {
		t.Fatalf("unexpected starting roster: bank=%d", len(bank))
	}

	// other players' emails never leave the server
	got := decode(t, s.do(http.MethodGet, "/api/matches/"+code, nil, bob))
	players := got["players"].([]interface{})
	if _, ok := players[0].(map[string]interface{})["player_email"]; ok {
		t.Fatalf("host email leaked to guest")
	}
	if _, ok := players[1].(map[string]interface{})["player_email"]; !ok {
		t.Fatalf("own email should be kept")
	}

	first := bank[0].ID
	rec = s.do(http.MethodPost, fmt.Sprintf("/api/matches/%s/units/%d/place", code, first), gin.H{"col": 4, "row": 4}, alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("place: %d %s", rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodPost, fmt.Sprintf("/api/matches/%s/units/%d/place", code, bank[1].ID), gin.H{"col": 0, "row": 0}, alice)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("detached placement must be rejected, got %d", rec.Code)
	}
	rec = s.do(http.MethodGet, fmt.Sprintf("/api/matches/%s/units/%d/valid-cells", code, first), nil, alice)
	if rec.Code != http.StatusConflict {
		t.Fatalf("placed units have no valid cells, got %d", rec.Code)
	}

	board := decode(t, s.do(http.MethodGet, "/api/matches/"+code+"/board", nil, alice))
	if board["units"].(float64) != 1 || board["max_life"].(float64) != 80 {
		t.Fatalf("unexpected board %v", board)
	}

	if rec := s.do(http.MethodPost, "/api/matches/"+code+"/dice", gin.H{"attribute": "luck"}, alice); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown attribute must be rejected, got %d", rec.Code)
	}

	if rec := s.do(http.MethodPost, "/api/matches/"+code+"/ready", nil, alice); rec.Code != http.StatusOK {
		t.Fatalf("ready: %d %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(http.MethodPost, "/api/matches/"+code+"/ready", nil, alice); rec.Code != http.StatusConflict {
		t.Fatalf("second ready must conflict, got %d", rec.Code)
	}
	rec = s.do(http.MethodPost, "/api/matches/"+code+"/ready", nil, bob)
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: %d %s", rec.Code, rec.Body.String())
	}
	final := decode(t, rec)
	if final["status"] != game.StatusFinished || final["winner"] != "Alice" {
		t.Fatalf("bob placed nothing and should forfeit: %v", final)
	}

	battle := decode(t, s.do(http.MethodGet, "/api/matches/"+code+"/battle", nil, bob))
	if battle["winner"] != "Alice" {
		t.Fatalf("unexpected battle record %v", battle)
	}
	if rec := s.do(http.MethodGet, "/api/matches/"+code+"/battle?round=1", nil, bob); rec.Code != http.StatusBadRequest {
		t.Fatalf("a forfeit has no rounds to replay, got %d", rec.Code)
	}

	stats := decode(t, s.do(http.MethodGet, "/api/player-stats", nil, alice))
	if stats["Wins"].(float64) != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestMatchByCode_RejectsMalformedCode(t *testing.T) {
	s := newTestServer(t)
	alice := s.guest("Alice")
	if rec := s.do(http.MethodGet, "/api/matches/nope", nil, alice); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/api/matches/ABCD1234", nil, alice); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
