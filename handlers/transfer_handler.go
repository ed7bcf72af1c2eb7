package handlers

import (
	"net/http"

	apperrors "github.com/MileWise/milewise-backend/errors"
	"github.com/MileWise/milewise-backend/pkg/transfer"
	"github.com/gin-gonic/gin"
)

type TransferHandler struct {
	graph *transfer.Graph
}

func NewTransferHandler(graph *transfer.Graph) *TransferHandler {
	if graph == nil {
		graph = transfer.Default()
	}
	return &TransferHandler{graph: graph}
}

// ListTransferPartnersHandler looks up the transfer catalog for the UI.
// With ?program= it lists the partners a bank program transfers to; with
// ?into= it lists the bank programs that transfer into an airline or hotel.
// GET /v1/transfer-partners
func (h *TransferHandler) ListTransferPartnersHandler(c *gin.Context) {
	program := c.Query("program")
	into := c.Query("into")

	switch {
	case program != "":
		partners := h.graph.PartnersOf(program)
		if partners == nil {
			_ = c.Error(apperrors.NotFound("Transfer program", program))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"program":  program,
			"partners": partners,
		})
	case into != "":
		sources := h.graph.ProgramsTransferringTo(into)
		c.JSON(http.StatusOK, gin.H{
			"into":    into,
			"sources": sources,
		})
	default:
		_ = c.Error(apperrors.ValidationFailed("Missing query parameter", "provide ?program= or ?into="))
	}
}
