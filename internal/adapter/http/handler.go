package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

// maxReportBytes bounds the request body of /api/respond.
const maxReportBytes = 64 << 10

// Advisor produces an advisory for a free-text disaster report.
type Advisor interface {
	Advise(ctx context.Context, report string) domain.Advisory
}

type respondRequest struct {
	Message string `json:"message"`
}

type handler struct {
	advisor Advisor
	logger  *slog.Logger
}

func (h *handler) respond(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxReportBytes)

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	advisory := h.advisor.Advise(c.Request.Context(), message)
	h.logger.Info("advisory served",
		"disaster_type", advisory.Event.Type,
		"location", advisory.Event.LocationName,
	)
	c.JSON(http.StatusOK, advisory)
}
