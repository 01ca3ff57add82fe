// Package routes defines HTTP routes for the booking service.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fredson0/Agendamento-Amado/internal/config"
	"github.com/fredson0/Agendamento-Amado/internal/handlers"
	"github.com/fredson0/Agendamento-Amado/internal/middleware"
	"github.com/fredson0/Agendamento-Amado/internal/service"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Appointment *handlers.AppointmentHandler
	Catalog     *handlers.CatalogHandler
	Contact     *handlers.ContactHandler
	Dashboard   *handlers.DashboardHandler
	Health      *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, h Handlers, jwtService service.JWTService, cfg *config.Config) {
	router.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))

	metrics := middleware.NewMetrics()
	router.Use(metrics.Collect())

	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.RequireAuth(jwtService)
	adminOnly := middleware.RequireAdmin()
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateRPS, cfg.AuthRateBurst)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authLimiter.Limit(), h.Auth.Register)
		auth.POST("/login", authLimiter.Limit(), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", authRequired, h.Auth.Logout)
	}

	services := v1.Group("/services")
	{
		services.GET("", h.Catalog.List)
		services.POST("", authRequired, adminOnly, h.Catalog.Create)
		services.PUT("/:id", authRequired, adminOnly, h.Catalog.Update)
		services.DELETE("/:id", authRequired, adminOnly, h.Catalog.Delete)
	}

	appointments := v1.Group("/appointments", authRequired)
	{
		appointments.POST("", h.Appointment.Create)
		appointments.GET("/mine", h.Appointment.ListMine)
		appointments.GET("", adminOnly, h.Appointment.ListAll)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.PUT("/:id", h.Appointment.Update)
		appointments.PUT("/:id/cancel", h.Appointment.Cancel)
		appointments.DELETE("/:id", h.Appointment.Delete)
	}

	contact := v1.Group("/contact", authRequired)
	{
		contact.POST("", h.Contact.Create)
		contact.GET("/mine", h.Contact.ListMine)
		contact.GET("", adminOnly, h.Contact.ListAll)
		contact.GET("/stats", adminOnly, h.Contact.Stats)
		contact.GET("/:id", h.Contact.Get)
		contact.PUT("/:id/status", adminOnly, h.Contact.SetStatus)
		contact.DELETE("/:id", adminOnly, h.Contact.Delete)
	}

	v1.GET("/dashboard", authRequired, h.Dashboard.Summary)
}
