package api

import (
	"net/http"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/game"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/service"

	"github.com/gin-gonic/gin"
)

type BuyRequest struct {
	Slot int `json:"slot"`
}

type DiceRequest struct {
	Attribute string `json:"attribute"`
}

type PlaceRequest struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// draftTarget resolves the match and session user shared by every draft
// action. On failure the response has already been written.
func (h *MatchHandler) draftTarget(c *gin.Context) (*game.Match, string, bool) {
	m, ok := h.matchFromParam(c)
	if !ok {
		return nil, "", false
	}
	email := sessionEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return nil, "", false
	}
	return m, email, true
}

// Reroll replaces the caller's shop.
func (h *MatchHandler) Reroll(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	p, err := service.RerollShop(h.repo, m.ID, email, h.settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gold": p.Gold, "shop": p.UnitsAt(game.LocationShop)})
}

// Buy moves a shop unit into the caller's bank.
func (h *MatchHandler) Buy(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	u, err := service.BuyUnit(h.repo, m.ID, email, req.Slot, h.settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Dice toggles the die for one attribute.
func (h *MatchHandler) Dice(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	var req DiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	active, err := service.ToggleDie(h.repo, m.ID, email, game.Attribute(req.Attribute))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active_dice": active})
}

// Ready locks the caller's roster. The second ready player triggers the
// battle and receives the finished match.
func (h *MatchHandler) Ready(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	out, resolved, err := service.SetReady(c.Request.Context(), h.repo, m.ID, email, h.settings)
	if err != nil {
		switch err {
		case service.ErrMatchNotFound, service.ErrPlayerNotInMatch, service.ErrMatchNotDrafting, service.ErrPlayerAlreadyReady:
			writeServiceError(c, err)
		default:
			logging.Error("failed to resolve battle", err, logging.Fields{constants.LogFieldMatchID: m.ID})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveBattle})
		}
		return
	}
	if !resolved {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Ready. Waiting for opponent."})
		return
	}
	body, err := MarshalForContext(c, out)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeMatch})
		return
	}
	c.JSON(http.StatusOK, body)
}

// Place puts a bank unit on the grid.
func (h *MatchHandler) Place(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	id, ok := unitIDParam(c)
	if !ok {
		return
	}
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	u, err := service.PlaceUnit(h.repo, m.ID, email, id, req.Col, req.Row, h.settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Lift returns a grid unit to the bank.
func (h *MatchHandler) Lift(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	id, ok := unitIDParam(c)
	if !ok {
		return
	}
	u, err := service.LiftUnit(h.repo, m.ID, email, id, h.settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Sell sells a bank or grid unit.
func (h *MatchHandler) Sell(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	id, ok := unitIDParam(c)
	if !ok {
		return
	}
	refund, err := service.SellUnit(h.repo, m.ID, email, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund})
}

// Feature toggles a grid unit's combat slot.
func (h *MatchHandler) Feature(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	id, ok := unitIDParam(c)
	if !ok {
		return
	}
	featured, err := service.ToggleFeatured(h.repo, m.ID, email, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured": featured})
}

// ValidCells lists the cells where a bank unit may be placed.
func (h *MatchHandler) ValidCells(c *gin.Context) {
	m, email, ok := h.draftTarget(c)
	if !ok {
		return
	}
	id, ok := unitIDParam(c)
	if !ok {
		return
	}
	cells, err := service.ValidCells(h.repo, m.ID, email, id, h.settings)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cells": cells})
}
