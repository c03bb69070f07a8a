package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/repository"
)

// GalleryHandler is plain CRUD over image records. Upload and hosting of
// the image bytes stay outside this service.
type GalleryHandler struct {
	repo *repository.GalleryRepo
}

func NewGalleryHandler(repo *repository.GalleryRepo) *GalleryHandler {
	return &GalleryHandler{repo: repo}
}

// GET /v1/gallery
func (h *GalleryHandler) List(c *gin.Context) {
	out, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": out})
}

// POST /v1/admin/gallery
func (h *GalleryHandler) Create(c *gin.Context) {
	var in struct {
		Title    string `json:"title" binding:"required"`
		ImageURL string `json:"image_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	img := &domain.GalleryImage{Title: in.Title, ImageURL: in.ImageURL}
	if err := h.repo.Create(c.Request.Context(), img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, img)
}

// DELETE /v1/admin/gallery/:id
func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
