package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnly gates a route on the binary admin flag carried in the
// access token claims. Must be stacked after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		isAdmin, exists := c.Get(CtxIsAdmin)
		if !exists || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	})
}
