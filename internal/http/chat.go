package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/service"
)

type ChatHandler struct {
	svc *service.ChatSvc
}

func NewChatHandler(svc *service.ChatSvc) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// GET /v1/chat/messages
func (h *ChatHandler) MyMessages(c *gin.Context) {
	out, err := h.svc.MyMessages(c.Request.Context(), identityFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

// GET /v1/chat/unread
func (h *ChatHandler) Unread(c *gin.Context) {
	n, err := h.svc.MyUnread(c.Request.Context(), identityFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// POST /v1/chat/messages
func (h *ChatHandler) Send(c *gin.Context) {
	var in struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.svc.Send(c.Request.Context(), identityFrom(c), in.Body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GET /v1/admin/chat/conversations
func (h *ChatHandler) Conversations(c *gin.Context) {
	out, err := h.svc.Conversations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

// GET /v1/admin/chat/conversations/:id/messages
func (h *ChatHandler) ConversationMessages(c *gin.Context) {
	out, err := h.svc.ConversationMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

// POST /v1/admin/chat/conversations/:id/messages
func (h *ChatHandler) Reply(c *gin.Context) {
	var in struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.svc.Reply(c.Request.Context(), identityFrom(c), c.Param("id"), in.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}
