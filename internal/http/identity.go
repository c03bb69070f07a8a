package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/service"
)

// identityFrom reads the caller set by the JWT middleware.
func identityFrom(c *gin.Context) service.Identity {
	sub, _ := c.Get("sub")
	name, _ := c.Get("name")
	email, _ := c.Get("email")
	id, _ := sub.(string)
	n, _ := name.(string)
	e, _ := email.(string)
	return service.Identity{ID: id, Name: n, Email: e}
}

func isAdmin(c *gin.Context) bool {
	v, _ := c.Get("role")
	role, _ := v.(string)
	return role == "ADMIN"
}
