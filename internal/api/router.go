package api

import (
	"github.com/Leonn190/Roll/internal/constants"
	"github.com/Leonn190/Roll/internal/service"
	"github.com/Leonn190/Roll/internal/storage"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route onto a gin engine.
func NewRouter(repo storage.Repository, settings service.Settings) *gin.Engine {
	handler := NewMatchHandler(repo, settings)
	authHandler := NewAuthHandler(repo)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteCards, handler.ListCards)
		apiRoutes.GET(constants.RoutePublicMatches, handler.ListPublicMatches)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.POST(constants.RouteAuthGuest, authHandler.GuestLogin)
		apiRoutes.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)

		protected := apiRoutes.Group("")
		protected.Use(AuthRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RoutePlayerStats, handler.UpdatePlayerProfile)

		protected.POST(constants.RouteMatches, handler.CreateMatch)
		protected.POST(constants.RouteMatchesJoin, handler.JoinMatch)
		protected.GET(constants.RouteMatchByCode, handler.GetMatch)
		protected.POST(constants.RouteMatchStart, handler.StartMatch)
		protected.POST(constants.RouteMatchLeave, handler.LeaveMatch)

		// Draft
		protected.POST(constants.RouteMatchReroll, handler.Reroll)
		protected.POST(constants.RouteMatchBuy, handler.Buy)
		protected.POST(constants.RouteMatchDice, handler.Dice)
		protected.GET(constants.RouteMatchBoard, handler.GetBoard)
		protected.POST(constants.RouteMatchReady, handler.Ready)
		protected.POST(constants.RouteUnitPlace, handler.Place)
		protected.POST(constants.RouteUnitLift, handler.Lift)
		protected.POST(constants.RouteUnitSell, handler.Sell)
		protected.POST(constants.RouteUnitFeature, handler.Feature)
		protected.GET(constants.RouteUnitValidCells, handler.ValidCells)

		protected.GET(constants.RouteMatchBattle, handler.GetBattle)
		protected.POST(constants.RouteAuthLogout, authHandler.Logout)
	}
	return router
}
