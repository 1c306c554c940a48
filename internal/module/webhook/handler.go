package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sherrors "github.com/storelink/paygate/internal/shared/errors"
	"go.uber.org/zap"
)

// Handler exposes the webhook intake over HTTP. Status codes are the
// retry contract with the gateway: non-2xx means redeliver, 2xx means
// done (including absorbed duplicates and business rejections).
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a webhook HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers webhook routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/webhooks/gateway", h.HandleDelivery)
}

// HandleDelivery processes one gateway delivery.
func (h *Handler) HandleDelivery(c *gin.Context) {
	var payload WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Error("malformed webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	verdict, err := h.service.Process(c.Request.Context(), &payload)
	if err != nil {
		status := sherrors.GetStatusCode(err)
		if status >= http.StatusInternalServerError {
			// Retryable: the gateway should redeliver.
			h.logger.Error("webhook processing failed",
				zap.String("event_id", payload.ID),
				zap.String("type", payload.Type),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
			return
		}
		h.logger.Error("webhook rejected",
			zap.String("event_id", payload.ID),
			zap.String("type", payload.Type),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	switch {
	case verdict.Duplicate:
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
	case verdict.Reason != "":
		c.JSON(http.StatusOK, gin.H{
			"status": "rejected",
			"reason": string(verdict.Reason),
		})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "processed"})
	}
}
