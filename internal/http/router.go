package api

import (
	"log"
	stdhttp "net/http"
	"strings"
	"time"

	intconfig "busbooking/internal/config"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		// Public search
		api.GET("/search", h.SearchSchedules)

		// Customer booking flow
		protected := api.Group("")
		protected.Use(middleware.Protect())
		protected.POST("/book", h.BookTicket)
		protected.POST("/cancel", h.CancelTicket)
		protected.GET("/bookings/:userId", h.GetMyBookings)
		protected.GET("/booking/:bookingId", h.GetBookingDetails)
		protected.GET("/booking/:bookingId/e-ticket", h.GetBookingETicket)

		// Admin catalog management
		admin := api.Group("/admin")
		admin.Use(middleware.Protect(), middleware.RequireAdmin())
		admin.POST("/bus", h.CreateBus)
		admin.GET("/bus", h.GetBuses)
		admin.DELETE("/bus/:id", h.DeleteBus)
		admin.POST("/route", h.CreateRoute)
		admin.GET("/route", h.GetRoutes)
		admin.DELETE("/route/:id", h.DeleteRoute)
		admin.POST("/schedule", h.CreateSchedule)
		admin.GET("/schedule", h.GetSchedules)
		admin.PUT("/schedule/:id", h.UpdateSchedule)
		admin.DELETE("/schedule/:id", h.DeleteSchedule)
	}

	return r
}

// corsMiddleware builds the CORS policy from the configured
// comma-separated origin list, defaulting to the usual local dev hosts.
func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if allowed = strings.TrimSpace(allowed); allowed != "" {
		origins = origins[:0]
		for _, o := range strings.Split(allowed, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
