package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdesk/pkg/news"
)

type NewsGateway interface {
	Everything(ctx context.Context) ([]byte, error)
}

type NewsHandler struct {
	gateway NewsGateway
}

func NewNewsHandler(gateway NewsGateway) *NewsHandler {
	return &NewsHandler{gateway: gateway}
}

// GetNews relays the upstream search response unchanged.
func (h *NewsHandler) GetNews(c *gin.Context) {
	body, err := h.gateway.Everything(c.Request.Context())
	if err != nil {
		var upstream *news.UpstreamError
		if errors.As(err, &upstream) {
			slog.Error("news upstream rejected request", "status", upstream.StatusCode)
			c.JSON(relayStatus(upstream.StatusCode), gin.H{"error": "Failed to fetch news"})
			return
		}

		slog.Error("error in news route", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// relayStatus passes upstream client and server errors through; any other
// non-2xx status cannot carry an error body and becomes 502.
func relayStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return http.StatusBadGateway
}
