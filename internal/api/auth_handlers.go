package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/logging"
	"github.com/Leonn190/Roll/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type GoogleOAuthCallbackRequest struct {
	Code string `json:"code"`
}

// knownIdentity prefers the stored display name and uuid so edited
// profiles survive a new login.
func (h *AuthHandler) knownIdentity(email, name string) (string, string) {
	id := ""
	if h.repo != nil {
		if ps, err := h.repo.GetStatsByEmail(email); err == nil {
			if ps.PlayerName != "" {
				name = ps.PlayerName
			}
			id = ps.PlayerUUID
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return name, id
}

func (h *AuthHandler) startSession(c *gin.Context, email, name, id string) bool {
	if h.repo != nil {
		if err := h.repo.UpsertUser(email, id, name); err != nil {
			logging.Warn("failed to upsert user profile", logging.Fields{constants.LogFieldPlayer: name, "error": err.Error()})
		}
	}
	sess, err := createSessionToken(email, name, id, sessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateSession, constants.JSONKeyDetails: err.Error()})
		return false
	}
	setSessionCookie(c, sess, sessionTTL)
	return true
}

func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	var req GoogleOAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	googleClientID := os.Getenv(constants.EnvGoogleClientID)
	googleClientSecret := os.Getenv(constants.EnvGoogleClientSecret)
	if googleClientID == "" || googleClientSecret == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingGoogleEnv})
		return
	}

	conf := &oauth2.Config{
		ClientID:     googleClientID,
		ClientSecret: googleClientSecret,
		RedirectURL:  constants.GoogleOAuthRedirect,
		Scopes:       constants.GoogleUserInfoScopes,
		Endpoint:     google.Endpoint,
	}

	ctx := c.Request.Context()
	token, err := conf.Exchange(ctx, req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrFailedExchangeToken, constants.JSONKeyDetails: err.Error()})
		return
	}

	resp, err := conf.Client(ctx, token).Get(constants.GoogleUserInfoURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGetUserInfo, constants.JSONKeyDetails: err.Error()})
		return
	}
	defer resp.Body.Close()

	userData, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fmt.Sprintf(constants.ErrFailedReadUserData, err.Error())})
		return
	}

	var payload map[string]any
	_ = json.Unmarshal(userData, &payload)
	email, _ := payload["email"].(string)
	name, _ := payload["name"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrNoEmailInGoogleProfile})
		return
	}

	nameToUse, id := h.knownIdentity(email, name)
	if !h.startSession(c, email, nameToUse, id) {
		return
	}

	out := map[string]any{"email": email, "name": nameToUse, "uuid": id}
	if pic, ok := payload["picture"].(string); ok && pic != "" {
		out["picture"] = pic
	}
	c.JSON(http.StatusOK, out)
}

type GuestLoginRequest struct {
	Name string `json:"name"`
}

// GuestLogin mints a session for a throwaway identity so matches can be
// played without a Google account.
func (h *AuthHandler) GuestLogin(c *gin.Context) {
	var req GuestLoginRequest
	// an empty body is fine
	_ = c.ShouldBindJSON(&req)

	id := uuid.NewString()
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Guest-" + id[:4]
	}
	if utf8.RuneCountInString(name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	email := id + "@" + constants.GuestEmailDomain
	if !h.startSession(c, email, name, id) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "name": name, "uuid": id})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Logged out"})
}
