package httpx

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

type CourtCatalog interface {
	List(ctx context.Context) ([]domain.Court, error)
}

type CourtHandler struct {
	courts CourtCatalog
}

func NewCourtHandler(courts CourtCatalog) *CourtHandler {
	return &CourtHandler{courts: courts}
}

// GET /v1/courts
func (h *CourtHandler) List(c *gin.Context) {
	out, err := h.courts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courts": out})
}
