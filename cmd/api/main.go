package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/barangay-portal/api/internal/config"
	"github.com/barangay-portal/api/internal/handlers"
	"github.com/barangay-portal/api/internal/logging"
	"github.com/barangay-portal/api/internal/middleware"
	"github.com/barangay-portal/api/internal/observability"
	"github.com/barangay-portal/api/internal/services"

	_ "github.com/barangay-portal/api/docs"
)

// @title           Barangay Citizen Portal API
// @version         1.0
// @description     Backend for the barangay citizen services portal: resident registry, announcements, emergency hotline directory, incident reports, appointments and account management for citizens and barangay staff.

// @contact.name   Barangay Portal Support
// @contact.email  support@barangay-portal.gov.ph

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Citizen account registration, sessions and recovery

// @tag.name residents
// @tag.description Resident registry operations

// @tag.name announcements
// @tag.description Barangay announcements and the public feed

// @tag.name hotlines
// @tag.description Emergency and service hotline directory

// @tag.name incidents
// @tag.description Incident report intake and triage

// @tag.name appointments
// @tag.description Appointment booking and document requests

// @tag.name admin
// @tag.description Back-office account management

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	config.InitMongoDB()
	config.InitRedis()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.Logger

	emailService := services.NewEmailService(logger)
	authService := services.NewAuthService(logger, emailService)
	residentService := services.NewResidentService(logger)
	announcementService := services.NewAnnouncementService(logger)
	hotlineService := services.NewHotlineService(logger)
	incidentService := services.NewIncidentReportService(logger)
	appointmentService := services.NewAppointmentService(logger)
	adminService := services.NewAdminUserService(logger)

	authHandler := handlers.NewAuthHandler(authService, logger)
	residentHandler := handlers.NewResidentHandler(residentService, logger)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService, logger)
	hotlineHandler := handlers.NewHotlineHandler(hotlineService, logger)
	incidentHandler := handlers.NewIncidentReportHandler(incidentService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, logger)
	adminHandler := handlers.NewAdminHandler(adminService, logger)

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.IdempotencyGuard())
	v1.Use(middleware.AuditMiddleware())
	{
		v1.GET("/health", handlers.HealthCheck)

		// Public endpoints, no session required
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/auth/verify-email/:token", authHandler.VerifyEmail)
		v1.POST("/auth/forgot-password", authHandler.ForgotPassword)
		v1.POST("/auth/reset-password", authHandler.ResetPassword)
		v1.POST("/auth/resend-verification", authHandler.ResendVerification)
		v1.POST("/admin/login", adminHandler.Login)

		v1.GET("/announcements/feed", announcementHandler.Feed)
		v1.GET("/hotlines", hotlineHandler.List)
		v1.GET("/hotlines/emergency", hotlineHandler.Emergency)
		v1.GET("/hotlines/:id", hotlineHandler.Get)

		// Citizen endpoints, any authenticated session
		citizen := v1.Group("")
		citizen.Use(middleware.AuthMiddleware())
		{
			citizen.GET("/auth/profile", authHandler.Profile)
			citizen.PUT("/auth/profile", authHandler.UpdateProfile)
			citizen.POST("/incident-reports", incidentHandler.Create)
			citizen.GET("/incident-reports/mine", incidentHandler.Mine)
			citizen.POST("/appointments", appointmentHandler.Create)
			citizen.GET("/appointments/mine", appointmentHandler.Mine)
		}

		// Admin endpoints
		admin := v1.Group("")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			admin.GET("/residents", residentHandler.List)
			admin.GET("/residents/stats/overview", residentHandler.Stats)
			admin.GET("/residents/:id", residentHandler.Get)
			admin.POST("/residents", middleware.RequirePermission("records:write"), residentHandler.Create)
			admin.PUT("/residents/:id", middleware.RequirePermission("records:write"), residentHandler.Update)
			admin.DELETE("/residents/:id", middleware.RequirePermission("records:write"), residentHandler.Delete)

			admin.GET("/announcements", announcementHandler.List)
			admin.GET("/announcements/:id", announcementHandler.Get)
			admin.POST("/announcements", middleware.RequirePermission("announcements:publish"), announcementHandler.Create)
			admin.PUT("/announcements/:id", middleware.RequirePermission("announcements:publish"), announcementHandler.Update)
			admin.DELETE("/announcements/:id", middleware.RequirePermission("announcements:publish"), announcementHandler.Delete)

			admin.GET("/hotlines/stats/overview", hotlineHandler.Stats)
			admin.POST("/hotlines", middleware.RequirePermission("hotlines:verify"), hotlineHandler.Create)
			admin.PUT("/hotlines/:id", middleware.RequirePermission("hotlines:verify"), hotlineHandler.Update)
			admin.DELETE("/hotlines/:id", middleware.RequirePermission("hotlines:verify"), hotlineHandler.Delete)
			admin.PUT("/hotlines/verify/bulk", middleware.RequirePermission("hotlines:verify"), hotlineHandler.BulkVerify)

			admin.GET("/incident-reports", incidentHandler.List)
			admin.GET("/incident-reports/stats/overview", incidentHandler.Stats)
			admin.GET("/incident-reports/emergency", incidentHandler.Emergency)
			admin.GET("/incident-reports/:id", incidentHandler.Get)
			admin.PUT("/incident-reports/:id", middleware.RequirePermission("reports:moderate"), incidentHandler.Update)
			admin.DELETE("/incident-reports/:id", middleware.RequirePermission("reports:moderate"), incidentHandler.Delete)
			admin.PUT("/incident-reports/status/bulk", middleware.RequirePermission("reports:moderate"), incidentHandler.BulkStatus)

			admin.GET("/appointments", appointmentHandler.List)
			admin.GET("/appointments/stats/overview", appointmentHandler.Stats)
			admin.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			admin.GET("/appointments/:id", appointmentHandler.Get)
			admin.PUT("/appointments/:id", middleware.RequirePermission("records:write"), appointmentHandler.Update)
			admin.DELETE("/appointments/:id", middleware.RequirePermission("records:write"), appointmentHandler.Delete)
			admin.PUT("/appointments/status/bulk", middleware.RequirePermission("records:write"), appointmentHandler.BulkStatus)

			admin.GET("/admin/me", adminHandler.Me)
			admin.GET("/admin/admins", middleware.RequirePermission("admins:manage"), adminHandler.List)
			admin.POST("/admin/create-admin", middleware.RequirePermission("admins:manage"), adminHandler.Create)
			admin.PUT("/admin/admins/:id", middleware.RequirePermission("admins:manage"), adminHandler.Update)
			admin.DELETE("/admin/admins/:id", middleware.RequirePermission("admins:manage"), adminHandler.Delete)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
