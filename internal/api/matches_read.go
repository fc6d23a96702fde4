package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/Leonn190/Roll/internal/battle"
	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/service"
	"github.com/gin-gonic/gin"
)

var playerNameRegex = regexp.MustCompile(`^[\p{L}\p{M}\p{N}.'\- ]{4,40}$`)

// ListCards returns the configured card catalogue.
func (h *MatchHandler) ListCards(c *gin.Context) {
	cards, err := h.repo.GetCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ListPublicMatches returns public matches still waiting for a second player.
func (h *MatchHandler) ListPublicMatches(c *gin.Context) {
	matches, err := h.repo.GetPublicMatches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	out, err := MarshalForContext(c, matches)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeMatches})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top players by wins, top 10 by default.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	users, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMatch returns the full match. Other players' emails are redacted.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	m, ok := h.matchFromParam(c)
	if !ok {
		return
	}
	out, err := MarshalForContext(c, m)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeMatch})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPlayerStats returns aggregated stats for the session user, or for
// ?email= when given.
func (h *MatchHandler) GetPlayerStats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = sessionEmail(c)
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	ps, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalForContext(c, ps)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}

// UpdatePlayerProfile updates the authenticated player's display name.
func (h *MatchHandler) UpdatePlayerProfile(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmailRequired})
		return
	}
	trimmed := strings.TrimSpace(body.Name)
	if !playerNameRegex.MatchString(trimmed) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Invalid player name"})
		return
	}
	ps, err := h.repo.GetStatsByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	ps.PlayerName = trimmed
	if err := h.repo.SaveUser(ps); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}

// GetBoard returns the caller's aggregated board.
func (h *MatchHandler) GetBoard(c *gin.Context) {
	m, ok := h.matchFromParam(c)
	if !ok {
		return
	}
	b, err := service.BoardSummary(h.repo, m.ID, sessionEmail(c), h.settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBattle returns the recorded battle. With ?round=n it returns the
// step-by-step playback of that round instead.
func (h *MatchHandler) GetBattle(c *gin.Context) {
	m, ok := h.matchFromParam(c)
	if !ok {
		return
	}
	rec, err := h.repo.GetBattleByMatchID(m.ID)
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	s := c.Query("round")
	if s == "" {
		c.JSON(http.StatusOK, rec)
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(rec.Log) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	round := rec.Log[n-1]
	// the life bars are scaled against the life each side entered round one with
	var maxLife map[string]int
	if len(rec.Log) > 0 {
		maxLife = rec.Log[0].LifeBefore
	}
	pb := battle.NewPlayback(round, maxLife)
	pb.Drain()
	c.JSON(http.StatusOK, gin.H{
		"round":       round.Round,
		"life_before": round.LifeBefore,
		"steps":       pb.Steps(),
		"life_after":  map[string]int{rec.Host: pb.Life(rec.Host), rec.Guest: pb.Life(rec.Guest)},
		"winner":      round.Winner,
	})
}
