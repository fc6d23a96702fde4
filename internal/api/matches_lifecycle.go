package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateMatchPayload struct {
	PlayerName  string `json:"player_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

// identity returns the session user's email, display name and uuid.
func identity(c *gin.Context, fallbackName string) (email, name, id string) {
	email = sessionEmail(c)
	if v, ok := c.Get("userName"); ok {
		name, _ = v.(string)
	}
	if fallbackName != "" {
		name = fallbackName
	}
	if v, ok := c.Get("userUUID"); ok {
		id, _ = v.(string)
	}
	return email, name, id
}

// CreateMatch creates a new match and returns its ID and join code.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, name, uid := identity(c, req.PlayerName)

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMatchNameExceeds})
		return
	}
	if utf8.RuneCountInString(req.Description) > 256 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrDescriptionExceeds})
		return
	}

	joinCode := generateJoinCode()
	m := game.Match{
		Name:        req.Name,
		Description: req.Description,
		Private:     req.Private,
		Status:      game.StatusWaitingForPlayers,
		JoinCode:    joinCode,
		Players: []game.Player{
			{PlayerName: name, PlayerEmail: email, PlayerUUID: uid},
		},
		Message: "Match created. Waiting for second player.",
	}

	if err := h.repo.UpsertUser(email, uid, name); err != nil {
		logging.Warn("failed to upsert user profile", logging.Fields{constants.LogFieldPlayer: name, "error": err.Error()})
	}
	if err := h.repo.CreateMatch(&m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateMatch})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"match_id":  m.ID,
		"join_code": joinCode,
	})
}

type JoinMatchPayload struct {
	JoinCode   string `json:"join_code"`
	PlayerName string `json:"player_name"`
}

// JoinMatch allows a second player to join a match via join code.
func (h *MatchHandler) JoinMatch(c *gin.Context) {
	var req JoinMatchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email, name, uid := identity(c, req.PlayerName)

	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidJoinCode})
		return
	}
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	if m.PlayerByEmail(email) != nil {
		c.JSON(http.StatusOK, gin.H{"match_id": m.ID, "join_code": m.JoinCode, "message": "Already in match"})
		return
	}
	if m.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyStartingOrStarted})
		return
	}
	if len(m.Players) >= 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchFull})
		return
	}

	m.Players = append(m.Players, game.Player{PlayerName: name, PlayerEmail: email, PlayerUUID: uid})
	m.Message = "Second player joined. Waiting for the match to start."

	if err := h.repo.UpsertUser(email, uid, name); err != nil {
		logging.Warn("failed to upsert user profile", logging.Fields{constants.LogFieldPlayer: name, "error": err.Error()})
	}
	if err := h.repo.UpdateMatch(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id":  m.ID,
		"join_code": m.JoinCode,
		"message":   "Successfully joined match",
	})
}

// StartMatch deals the starting rosters and opens the draft. Only the host
// may start.
func (h *MatchHandler) StartMatch(c *gin.Context) {
	m, ok := h.matchFromParam(c)
	if !ok {
		return
	}
	if len(m.Players) < 2 {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotEnoughPlayers})
		return
	}
	if m.Players[0].PlayerEmail != sessionEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrOnlyHostCanStart})
		return
	}
	if err := service.StartMatch(h.repo, m, h.settings); err != nil {
		logging.Error("failed to start match", err, logging.Fields{constants.LogFieldMatchID: m.ID})
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        m.Message,
		"draft_deadline": m.DraftDeadline,
	})
}

// LeaveMatch removes a player from a waiting room.
func (h *MatchHandler) LeaveMatch(c *gin.Context) {
	m, ok := h.matchFromParam(c)
	if !ok {
		return
	}
	if m.Status != game.StatusWaitingForPlayers {
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotLeaveAfterMatchStarted})
		return
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	if m.PlayerByEmail(email) == nil {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisMatch})
		return
	}
	if err := h.repo.RemovePlayerByEmail(m.ID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRemovePlayer})
		return
	}
	// Reflect removal in the in-memory model to avoid re-attaching via FullSaveAssociations
	filtered := make([]game.Player, 0, len(m.Players))
	for _, p := range m.Players {
		if p.PlayerEmail != email {
			filtered = append(filtered, p)
		}
	}
	m.Players = filtered
	m.Message = "A player left. Waiting for a new participant."
	if err := h.repo.UpdateMatch(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateMatch})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Player removed"})
}
