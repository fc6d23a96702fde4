package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"

	DefaultConfigPath = "./roll_config.yaml"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "roll_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"

	// Guest sessions use a synthetic email under this domain.
	GuestEmailDomain = "guest.roll.local"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteCards              = "/cards"
	RoutePublicMatches      = "/public-matches"
	RouteLeaderboard        = "/leaderboard"
	RouteVersion            = "/version"
	RouteAuthGuest          = "/auth/guest"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RouteAuthLogout         = "/auth/logout"
	RoutePlayerStats        = "/player-stats"
	RouteMatches            = "/matches"
	RouteMatchesJoin        = "/matches/join"
	RouteMatchByCode        = "/matches/:code"
	RouteMatchStart         = "/matches/:code/start"
	RouteMatchLeave         = "/matches/:code/leave"
	RouteMatchReady         = "/matches/:code/ready"
	RouteMatchReroll        = "/matches/:code/reroll"
	RouteMatchBuy           = "/matches/:code/buy"
	RouteMatchDice          = "/matches/:code/dice"
	RouteMatchBoard         = "/matches/:code/board"
	RouteMatchBattle        = "/matches/:code/battle"
	RouteUnitPlace          = "/matches/:code/units/:unitID/place"
	RouteUnitLift           = "/matches/:code/units/:unitID/lift"
	RouteUnitSell           = "/matches/:code/units/:unitID/sell"
	RouteUnitFeature        = "/matches/:code/units/:unitID/feature"
	RouteUnitValidCells     = "/matches/:code/units/:unitID/valid-cells"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidJoinCode        = "Invalid join code"
	ErrInvalidUnitID          = "Invalid unit ID"
	ErrMatchNotFound          = "Match not found"
	ErrFailedFetchCards       = "Failed to fetch cards"
	ErrFailedFetchMatches     = "Failed to fetch matches"
	ErrFailedEncodeMatches    = "Failed to encode matches"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeMatch      = "Failed to encode match"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateMatch             = "Failed to create match"
	ErrMatchNameExceeds              = "Match name exceeds 32 characters"
	ErrDescriptionExceeds            = "Description exceeds 256 characters"
	ErrMatchFull                     = "Match is full"
	ErrNotEnoughPlayers              = "Not enough players to start the match"
	ErrMatchAlreadyStartingOrStarted = "Match is already starting or started"
	ErrOnlyHostCanStart              = "Only the host can start the match"
	ErrFailedUpdateMatch             = "Failed to update match"
	ErrFailedRemovePlayer            = "Failed to remove player"
	ErrPlayerNotInThisMatch          = "Player not in this match"
	ErrCannotLeaveAfterMatchStarted  = "Cannot leave after the match has started"

	ErrMatchNotDrafting    = "Match is not in the draft phase"
	ErrPlayerAlreadyReady  = "Player is already ready"
	ErrNotEnoughGold       = "Not enough gold"
	ErrBankFull            = "Bank is full"
	ErrShopSlotEmpty       = "Shop slot is empty"
	ErrUnitNotFound        = "Unit not found"
	ErrUnitNotSellable     = "Unit cannot be sold from the shop"
	ErrIllegalPlacement    = "Unit cannot be placed there"
	ErrUnitNotOnGrid       = "Unit is not on the grid"
	ErrUnitNotInBank       = "Unit is not in the bank"
	ErrFeaturedSlotsFull   = "All unlocked combat slots are taken"
	ErrUnknownAttribute    = "Unknown attribute"
	ErrBattleNotFound      = "Battle not found"
	ErrFailedResolveBattle = "Failed to resolve battle"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldMatchID  = "match_id"
	LogFieldJoinCode = "join_code"
	LogFieldPlayer   = "player"
	LogFieldUnitID   = "unit_id"
	LogFieldRounds   = "rounds"
	LogFieldWinner   = "winner"
	LogFieldSource   = "source"
	LogFieldName     = "name"
	LogFieldKey      = "key"
	LogFieldAddr     = "addr"
)
