package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"campuscare/handlers"
	"campuscare/middleware"
	"campuscare/services/user"
)

// HandlerBundle holds the wired handlers route registration needs.
type HandlerBundle struct {
	Auth    *handlers.AuthHandler
	Booking *handlers.BookingHandler
	Chat    *handlers.ChatHandler
	FAQ     *handlers.FAQHandler
	Revoker user.TokenRevoker
}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		api.POST("/logout", middleware.JWTAuthUserMiddleware(false, hb.Revoker), hb.Auth.Logout)
		api.GET("/me", middleware.JWTAuthUserMiddleware(false, hb.Revoker), hb.Auth.Me)
	}
}

// RegisterBookingRoutes sets up the appointment booking endpoints.
// Creation accepts guests, so its auth is optional; everything else
// scoped to an owner requires a token, and the management endpoints
// require the admin flag.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", middleware.JWTAuthUserMiddleware(true, hb.Revoker), hb.Booking.CreateBooking)

		// Owner endpoints (require authentication).
		owned := api.Group("")
		owned.Use(middleware.JWTAuthUserMiddleware(false, hb.Revoker))
		owned.GET("/mine", hb.Booking.GetMyBookings)
		owned.GET("/:id", hb.Booking.GetBookingByID)
		owned.PUT("/:id", hb.Booking.CancelBooking)
		owned.DELETE("/:id", hb.Booking.CancelBooking)
		owned.PATCH("/:id", hb.Booking.UpdateUserBooking)

		// Admin endpoints.
		admin := api.Group("")
		admin.Use(middleware.JWTAuthUserMiddleware(false, hb.Revoker), middleware.JWTAuthAdminMiddleware())
		admin.GET("", hb.Booking.GetAllBookings)
		admin.PUT("/:id/status", hb.Booking.UpdateBookingStatus)
	}
}

// RegisterChatRoutes sets up the FAQ chat widget endpoints. Send and
// feedback are public (the widget works for anonymous visitors); the
// analytics endpoints are admin-only.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/send", middleware.JWTAuthUserMiddleware(true, hb.Revoker), hb.Chat.Send)
		api.POST("/feedback", hb.Chat.Feedback)
		api.POST("/reset", middleware.JWTAuthUserMiddleware(false, hb.Revoker), hb.Chat.Reset)
		api.GET("/faqs", hb.Chat.Questions)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthUserMiddleware(false, hb.Revoker), middleware.JWTAuthAdminMiddleware())
		admin.GET("/stats", hb.Chat.QuestionStats)
		admin.GET("/feedback/stats", hb.Chat.FeedbackStats)
		admin.GET("/emotions", hb.Chat.EmotionStats)
		admin.DELETE("/stats", hb.Chat.ClearStats)
	}
}

// RegisterFAQRoutes sets up knowledge-base management. Reading the list
// is public; edits are admin-only.
func RegisterFAQRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/faqs")
	{
		api.GET("", hb.FAQ.List)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthUserMiddleware(false, hb.Revoker), middleware.JWTAuthAdminMiddleware())
		admin.POST("", hb.FAQ.Create)
		admin.PUT("", hb.FAQ.Replace)
		admin.PUT("/:index", hb.FAQ.Update)
		admin.DELETE("/:index", hb.FAQ.Delete)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "CampusCare API"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterFAQRoutes(r, hb)
	RegisterHealthRoute(r)
}
