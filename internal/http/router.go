package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Kamol1dd1nbek/quote-backend/internal/http/handlers"
	"github.com/Kamol1dd1nbek/quote-backend/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. The credential lifecycle routes
// are public; the session boundary guard wraps only the protected
// profile routes, with the admin gate stacked where required.
func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, jwtmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", ah.SignUp)
	auth.POST("/signin", ah.SignIn)
	auth.POST("/signout/:id", ah.SignOut)
	auth.POST("/refresh/:id", ah.Refresh)
	auth.GET("/activate/:token", ah.Activate)
	auth.POST("/send-otp", ah.SendOtp)
	auth.POST("/verify", ah.VerifyOtp)
	auth.POST("/reset", ah.ResetPassword)

	users := api.Group("/users")
	users.Use(jwtmw.WithJWT())
	users.GET("", middleware.AdminOnly(), uh.List)
	users.PATCH("/:id", uh.Update)
	users.DELETE("/:id", middleware.AdminOnly(), uh.Delete)

	return r
}
