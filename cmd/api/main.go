// Package main is the entry point for the booking service.
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/fredson0/Agendamento-Amado/internal/config"
	"github.com/fredson0/Agendamento-Amado/internal/database"
	"github.com/fredson0/Agendamento-Amado/internal/handlers"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
	"github.com/fredson0/Agendamento-Amado/internal/routes"
	"github.com/fredson0/Agendamento-Amado/internal/service"
	"github.com/fredson0/Agendamento-Amado/pkg/redis"
)

// @title Booking Service API
// @version 1.0
// @description Appointment booking API: registration, service catalog, appointments and contact inbox
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db, cfg.SlotPolicy); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Initialize services
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	authService := service.NewAuthService(userRepo, jwtService, redisClient)
	bookingService := service.NewBookingService(appointmentRepo, serviceRepo, cfg.SlotPolicy)
	catalogService := service.NewCatalogService(serviceRepo)
	contactService := service.NewContactService(contactRepo, userRepo)
	dashboardService := service.NewDashboardService(appointmentRepo, userRepo, contactRepo)

	// Setup router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	routes.Setup(router, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Appointment: handlers.NewAppointmentHandler(bookingService),
		Catalog:     handlers.NewCatalogHandler(catalogService),
		Contact:     handlers.NewContactHandler(contactService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		Health:      handlers.NewHealthHandler(db, redisClient),
	}, jwtService, cfg)

	log.Printf("Starting booking service on port %s", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
