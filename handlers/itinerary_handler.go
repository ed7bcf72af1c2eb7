package handlers

import (
	"net/http"

	apperrors "github.com/MileWise/milewise-backend/errors"
	"github.com/MileWise/milewise-backend/internal/metrics"
	internal_store "github.com/MileWise/milewise-backend/internal/store"
	bookingservice "github.com/MileWise/milewise-backend/models/booking/service"
	"github.com/MileWise/milewise-backend/types"
	"github.com/gin-gonic/gin"
)

type ItineraryHandler struct {
	itineraryStore internal_store.ItineraryStore
	walletStore    internal_store.WalletStore
	bookingService *bookingservice.Service
}

func NewItineraryHandler(itineraryStore internal_store.ItineraryStore, walletStore internal_store.WalletStore, bookingService *bookingservice.Service) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryStore: itineraryStore,
		walletStore:    walletStore,
		bookingService: bookingService,
	}
}

// SaveItineraryHandler saves a chosen booking plan
// POST /v1/itineraries
func (h *ItineraryHandler) SaveItineraryHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}

	var req types.ItineraryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}
	if len(req.Assignments) == 0 {
		_ = c.Error(apperrors.ValidationFailed("Empty itinerary", "assignments must cover at least one leg"))
		return
	}

	it, err := h.itineraryStore.CreateItinerary(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	metrics.ItinerarySaves.Inc()
	c.JSON(http.StatusCreated, it)
}

// ListItinerariesHandler lists the user's saved itineraries
// GET /v1/itineraries
func (h *ItineraryHandler) ListItinerariesHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}

	itineraries, err := h.itineraryStore.ListItineraries(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if itineraries == nil {
		itineraries = []types.Itinerary{}
	}

	c.JSON(http.StatusOK, gin.H{"data": itineraries})
}

// GetItineraryHandler fetches one saved itinerary
// GET /v1/itineraries/:id
func (h *ItineraryHandler) GetItineraryHandler(c *gin.Context) {
	it := h.loadOwnedItinerary(c)
	if it == nil {
		return
	}
	c.JSON(http.StatusOK, it)
}

// DeleteItineraryHandler removes a saved itinerary
// DELETE /v1/itineraries/:id
func (h *ItineraryHandler) DeleteItineraryHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}

	id := c.Param("id")
	if id == "" || !isValidUUID(id) {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "valid itinerary ID is required"))
		return
	}

	if err := h.itineraryStore.DeleteItinerary(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BookingStepsRequest carries the current flight data for a saved itinerary.
// Flight prices are client state and are never persisted, so the steps view
// joins them with the stored assignments and wallet on each call.
type BookingStepsRequest struct {
	Flights []types.Flight `json:"flights" binding:"required"`
}

// GetBookingStepsHandler recomputes the linear how-to-book plan for a saved
// itinerary against the user's current wallet
// POST /v1/itineraries/:id/steps
func (h *ItineraryHandler) GetBookingStepsHandler(c *gin.Context) {
	it := h.loadOwnedItinerary(c)
	if it == nil {
		return
	}

	var req BookingStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	wallet, err := h.walletStore.ListEntries(c.Request.Context(), it.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	steps := h.bookingService.AnalyzeItinerary(it.Assignments, req.Flights, wallet, it.Travelers)
	if steps == nil {
		steps = []types.BookingStep{}
	}

	c.JSON(http.StatusOK, gin.H{
		"itineraryId": it.ID,
		"steps":       steps,
	})
}

// loadOwnedItinerary fetches the itinerary in the :id param and enforces that
// it belongs to the authenticated user. On failure it sets the error on the
// context and returns nil.
func (h *ItineraryHandler) loadOwnedItinerary(c *gin.Context) *types.Itinerary {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return nil
	}

	id := c.Param("id")
	if id == "" || !isValidUUID(id) {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "valid itinerary ID is required"))
		return nil
	}

	it, err := h.itineraryStore.GetItinerary(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return nil
	}
	if it.UserID != userID {
		_ = c.Error(apperrors.ItineraryAccessDenied(userID, id))
		return nil
	}
	return it
}
