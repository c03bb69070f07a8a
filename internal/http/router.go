// Package httpx wires the gin routes for the venue booking API.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/middlewares"
)

type Deps struct {
	JWTSecret string

	Auth     *AuthHandler
	Payments *PaymentHandler
	Webhook  *WebhookHandler
	Bookings *BookingHandler
	Courts   *CourtHandler
	Gallery  *GalleryHandler
	Chat     *ChatHandler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Gateway-facing: DOKU authenticates itself via its own retry channel,
	// not via our user JWTs.
	r.POST("/webhooks/doku", d.Webhook.Notify)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", d.Auth.Register)
		v1.POST("/auth/login", d.Auth.Login)

		v1.GET("/courts", d.Courts.List)
		v1.GET("/availability", d.Bookings.Availability)
		v1.GET("/gallery", d.Gallery.List)

		secured := v1.Group("")
		secured.Use(middlewares.JWTAuth(d.JWTSecret))
		{
			secured.POST("/payments", d.Payments.Initiate)
			secured.GET("/bookings", d.Bookings.ListMine)
			secured.GET("/bookings/:id", d.Bookings.Get)

			secured.GET("/chat/messages", d.Chat.MyMessages)
			secured.GET("/chat/unread", d.Chat.Unread)
			secured.POST("/chat/messages", d.Chat.Send)
		}

		admin := v1.Group("/admin")
		admin.Use(middlewares.JWTAuth(d.JWTSecret), middlewares.RequireRole("ADMIN"))
		{
			admin.GET("/bookings", d.Bookings.List)
			admin.PATCH("/bookings/:id/status", d.Bookings.OverrideStatus)

			admin.POST("/gallery", d.Gallery.Create)
			admin.DELETE("/gallery/:id", d.Gallery.Delete)

			admin.GET("/chat/conversations", d.Chat.Conversations)
			admin.GET("/chat/conversations/:id/messages", d.Chat.ConversationMessages)
			admin.POST("/chat/conversations/:id/messages", d.Chat.Reply)
		}
	}

	return r
}
