package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/milkbill/internal/domain/models"
	"github.com/mamadbah2/milkbill/internal/service/forwarding"
)

// RowForwarder relays sheet rows to the spreadsheet web app.
type RowForwarder interface {
	Forward(ctx context.Context, row models.SheetRow) error
}

// ForwardingHandler serves /api/add-data.
type ForwardingHandler struct {
	svc    RowForwarder
	logger *zap.Logger
}

// NewForwardingHandler constructs the HTTP handler adapter.
func NewForwardingHandler(svc RowForwarder, logger *zap.Logger) *ForwardingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForwardingHandler{svc: svc, logger: logger}
}

// AddData forwards the posted bill row. Every failure, including a body that
// cannot be parsed, is reported as a 500.
func (h *ForwardingHandler) AddData(c *gin.Context) {
	var row models.SheetRow
	if err := c.ShouldBindJSON(&row); err != nil {
		h.logger.Error("invalid add-data payload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add data"})
		return
	}

	if err := h.svc.Forward(c.Request.Context(), row); err != nil {
		if errors.Is(err, forwarding.ErrNotConfigured) {
			h.logger.Error("forwarding endpoint not configured", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			return
		}
		h.logger.Error("failed forwarding row", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Data sent successfully"})
}
