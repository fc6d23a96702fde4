package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/service"
	"github.com/Leonn190/Roll/internal/shop"
	"github.com/Leonn190/Roll/internal/storage"
	"github.com/gin-gonic/gin"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	repo     storage.Repository
	settings service.Settings
}

// NewMatchHandler creates a new MatchHandler with the given repository and
// the configured game settings.
func NewMatchHandler(repo storage.Repository, settings service.Settings) *MatchHandler {
	return &MatchHandler{repo: repo, settings: settings}
}

func sessionEmail(c *gin.Context) string {
	v, _ := c.Get("userEmail")
	s, _ := v.(string)
	return s
}

// matchFromParam resolves the :code route param. On failure the response
// has already been written.
func (h *MatchHandler) matchFromParam(c *gin.Context) (*game.Match, bool) {
	code := normalizeJoinCode(c.Param("code"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidJoinCode})
		return nil, false
	}
	m, err := h.repo.FindMatchByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return nil, false
	}
	return m, true
}

func unitIDParam(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("unitID"), 10, 64)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidUnitID})
		return 0, false
	}
	return uint(n), true
}

// writeServiceError maps service and shop sentinel errors to responses.
func writeServiceError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, constants.ErrFailedUpdateMatch
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		status, msg = http.StatusNotFound, constants.ErrMatchNotFound
	case errors.Is(err, service.ErrPlayerNotInMatch):
		status, msg = http.StatusForbidden, constants.ErrPlayerNotInThisMatch
	case errors.Is(err, service.ErrMatchNotDrafting):
		status, msg = http.StatusConflict, constants.ErrMatchNotDrafting
	case errors.Is(err, service.ErrPlayerAlreadyReady):
		status, msg = http.StatusConflict, constants.ErrPlayerAlreadyReady
	case errors.Is(err, service.ErrNotEnoughPlayers):
		status, msg = http.StatusConflict, constants.ErrNotEnoughPlayers
	case errors.Is(err, service.ErrMatchAlreadyStarted):
		status, msg = http.StatusConflict, constants.ErrMatchAlreadyStartingOrStarted
	case errors.Is(err, service.ErrUnitNotFound), errors.Is(err, shop.ErrUnknownCard):
		status, msg = http.StatusNotFound, constants.ErrUnitNotFound
	case errors.Is(err, service.ErrUnitNotInBank):
		status, msg = http.StatusConflict, constants.ErrUnitNotInBank
	case errors.Is(err, service.ErrUnitNotOnGrid):
		status, msg = http.StatusConflict, constants.ErrUnitNotOnGrid
	case errors.Is(err, service.ErrIllegalPlacement):
		status, msg = http.StatusUnprocessableEntity, constants.ErrIllegalPlacement
	case errors.Is(err, service.ErrFeaturedSlotsFull):
		status, msg = http.StatusConflict, constants.ErrFeaturedSlotsFull
	case errors.Is(err, service.ErrUnknownAttribute):
		status, msg = http.StatusBadRequest, constants.ErrUnknownAttribute
	case errors.Is(err, shop.ErrNotEnoughGold):
		status, msg = http.StatusConflict, constants.ErrNotEnoughGold
	case errors.Is(err, shop.ErrBankFull):
		status, msg = http.StatusConflict, constants.ErrBankFull
	case errors.Is(err, shop.ErrSlotEmpty):
		status, msg = http.StatusNotFound, constants.ErrShopSlotEmpty
	case errors.Is(err, shop.ErrNotSellable):
		status, msg = http.StatusConflict, constants.ErrUnitNotSellable
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg})
}
