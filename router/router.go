package router

import (
	"time"

	"github.com/MileWise/milewise-backend/config"
	"github.com/MileWise/milewise-backend/handlers"
	"github.com/MileWise/milewise-backend/middleware"
	"github.com/MileWise/milewise-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config           *config.Config
	RateLimitService services.RateLimiterInterface
	OptimizeHandler  *handlers.OptimizeHandler
	ItineraryHandler *handlers.ItineraryHandler
	WalletHandler    *handlers.WalletHandler
	TransferHandler  *handlers.TransferHandler
	HealthHandler    *handlers.HealthHandler
	Logger           *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and Metrics Routes (no auth)
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		// Public catalog lookup
		v1.GET("/transfer-partners", deps.TransferHandler.ListTransferPartnersHandler)

		// --- Authenticated Routes ---
		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(&deps.Config.Server))
		{
			// Optimizer
			optimizeWindow := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
			authRoutes.POST("/trips/:id/optimize",
				middleware.RateLimiter(deps.RateLimitService, deps.Config.RateLimit.OptimizeRequestsPerMinute, optimizeWindow),
				deps.OptimizeHandler.OptimizeTripHandler)

			// Wallet Routes
			walletRoutes := authRoutes.Group("/wallet")
			{
				walletRoutes.POST("", deps.WalletHandler.CreateEntryHandler)
				walletRoutes.GET("", deps.WalletHandler.ListEntriesHandler)
				walletRoutes.PUT("/:id", deps.WalletHandler.UpdateEntryHandler)
				walletRoutes.DELETE("/:id", deps.WalletHandler.DeleteEntryHandler)
			}

			// Itinerary Routes
			itineraryRoutes := authRoutes.Group("/itineraries")
			{
				itineraryRoutes.POST("", deps.ItineraryHandler.SaveItineraryHandler)
				itineraryRoutes.GET("", deps.ItineraryHandler.ListItinerariesHandler)
				itineraryRoutes.GET("/:id", deps.ItineraryHandler.GetItineraryHandler)
				itineraryRoutes.DELETE("/:id", deps.ItineraryHandler.DeleteItineraryHandler)
				itineraryRoutes.POST("/:id/steps", deps.ItineraryHandler.GetBookingStepsHandler)
			}
		}
	}

	return r
}
