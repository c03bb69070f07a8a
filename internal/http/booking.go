package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/service"
)

type BookingHandler struct {
	svc    *service.BookingSvc
	courts CourtCatalog
}

func NewBookingHandler(svc *service.BookingSvc, courts CourtCatalog) *BookingHandler {
	return &BookingHandler{svc: svc, courts: courts}
}

// GET /v1/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	out, err := h.svc.ListMine(c.Request.Context(), identityFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"), identityFrom(c), isAdmin(c))
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, b)
	}
}

// GET /v1/availability?date=YYYY-MM-DD
func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	courts, err := h.courts.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Availability(c.Request.Context(), date, courts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": domain.TimeSlots(), "courts": out})
}

// GET /v1/admin/bookings?page=1&page_size=20&court_id=...&date=YYYY-MM-DD
func (h *BookingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	out, total, err := h.svc.List(c.Request.Context(), int32(page-1), int32(size), c.Query("court_id"), c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "total": total})
}

// PATCH /v1/admin/bookings/:id/status
func (h *BookingHandler) OverrideStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.OverrideStatus(c.Request.Context(), c.Param("id"), domain.PaymentStatus(in.Status))
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, b)
	}
}
