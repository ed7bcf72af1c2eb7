package handlers

import (
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/MileWise/milewise-backend/errors"
	"github.com/MileWise/milewise-backend/internal/metrics"
	internal_store "github.com/MileWise/milewise-backend/internal/store"
	bookingservice "github.com/MileWise/milewise-backend/models/booking/service"
	"github.com/MileWise/milewise-backend/types"
	"github.com/gin-gonic/gin"
)

// OptimizeRequest is the request body for an optimize run. Wallet is optional;
// when omitted the authenticated user's stored wallet is used.
type OptimizeRequest struct {
	Legs            []types.Leg         `json:"legs" binding:"required"`
	Flights         []types.Flight      `json:"flights" binding:"required"`
	Wallet          []types.WalletEntry `json:"wallet,omitempty"`
	Travelers       int                 `json:"travelers"`
	TransferBonuses map[string]float64  `json:"transfer_bonuses,omitempty"`
}

// OptimizeResponse wraps the ordered strategies for one trip.
type OptimizeResponse struct {
	TripID     string                  `json:"tripId"`
	Strategies []types.BookingStrategy `json:"strategies"`
}

type OptimizeHandler struct {
	bookingService *bookingservice.Service
	walletStore    internal_store.WalletStore
	maxFlights     int
	maxTravelers   int
}

func NewOptimizeHandler(bookingService *bookingservice.Service, walletStore internal_store.WalletStore, maxFlights, maxTravelers int) *OptimizeHandler {
	return &OptimizeHandler{
		bookingService: bookingService,
		walletStore:    walletStore,
		maxFlights:     maxFlights,
		maxTravelers:   maxTravelers,
	}
}

// OptimizeTripHandler runs the booking optimizer for a trip
// POST /v1/trips/:id/optimize
func (h *OptimizeHandler) OptimizeTripHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}
	tripID := c.Param("id")

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	if len(req.Flights) > h.maxFlights {
		_ = c.Error(apperrors.ValidationFailed("Too many flights",
			fmt.Sprintf("at most %d candidate flights per request", h.maxFlights)))
		return
	}
	if req.Travelers > h.maxTravelers {
		_ = c.Error(apperrors.ValidationFailed("Too many travelers",
			fmt.Sprintf("at most %d travelers per request", h.maxTravelers)))
		return
	}
	for i := range req.Flights {
		if req.Flights[i].PaymentType != "" && !req.Flights[i].PaymentType.IsValid() {
			_ = c.Error(apperrors.ValidationFailed("Invalid payment type",
				fmt.Sprintf("flight %s: %q", req.Flights[i].ID, req.Flights[i].PaymentType)))
			return
		}
	}

	// Default to the stored wallet when the request does not carry one.
	wallet := req.Wallet
	if wallet == nil {
		stored, err := h.walletStore.ListEntries(c.Request.Context(), userID)
		if err != nil {
			metrics.OptimizeRequests.WithLabelValues("error").Inc()
			_ = c.Error(err)
			return
		}
		wallet = stored
	}

	start := time.Now()
	strategies := h.bookingService.OptimizeTrip(bookingservice.OptimizeInput{
		Legs:            req.Legs,
		Flights:         req.Flights,
		Wallet:          wallet,
		Travelers:       req.Travelers,
		TransferBonuses: req.TransferBonuses,
	})
	metrics.OptimizeDuration.Observe(time.Since(start).Seconds())
	metrics.OptimizeRequests.WithLabelValues("ok").Inc()

	if strategies == nil {
		strategies = []types.BookingStrategy{}
	}
	c.JSON(http.StatusOK, OptimizeResponse{
		TripID:     tripID,
		Strategies: strategies,
	})
}
