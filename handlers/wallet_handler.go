package handlers

import (
	"net/http"

	apperrors "github.com/MileWise/milewise-backend/errors"
	internal_store "github.com/MileWise/milewise-backend/internal/store"
	"github.com/MileWise/milewise-backend/types"
	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletStore internal_store.WalletStore
}

func NewWalletHandler(walletStore internal_store.WalletStore) *WalletHandler {
	return &WalletHandler{
		walletStore: walletStore,
	}
}

// CreateEntryHandler adds a reward balance to the user's wallet
// POST /v1/wallet
func (h *WalletHandler) CreateEntryHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}

	var req types.WalletEntryCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}
	if !req.CurrencyType.IsValid() {
		_ = c.Error(apperrors.ValidationFailed("Invalid currency type", string(req.CurrencyType)))
		return
	}

	entry, err := h.walletStore.CreateEntry(c.Request.Context(), userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListEntriesHandler lists the user's wallet entries
// GET /v1/wallet
func (h *WalletHandler) ListEntriesHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}

	entries, err := h.walletStore.ListEntries(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if entries == nil {
		entries = []types.WalletEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// UpdateEntryHandler updates a wallet entry's program, balance, or redemption value
// PUT /v1/wallet/:id
func (h *WalletHandler) UpdateEntryHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}

	id := c.Param("id")
	if id == "" || !isValidUUID(id) {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "valid wallet entry ID is required"))
		return
	}

	var req types.WalletEntryUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	entry, err := h.walletStore.UpdateEntry(c.Request.Context(), id, userID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntryHandler removes a wallet entry
// DELETE /v1/wallet/:id
func (h *WalletHandler) DeleteEntryHandler(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.Unauthorized("not_authenticated", "user not authenticated"))
		return
	}

	id := c.Param("id")
	if id == "" || !isValidUUID(id) {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "valid wallet entry ID is required"))
		return
	}

	if err := h.walletStore.DeleteEntry(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
