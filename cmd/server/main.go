package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"surgitrack-backend/internal/config"
	"surgitrack-backend/internal/database"
	"surgitrack-backend/internal/handler"
	"surgitrack-backend/internal/middleware"
	"surgitrack-backend/internal/repository"
	"surgitrack-backend/internal/service"
	"surgitrack-backend/internal/status"
	"surgitrack-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection
	db := database.Connect(cfg)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	surgeryRepo := repository.NewSurgeryRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)

	// 5. Initialize services
	registry := status.DefaultRegistry()
	authService := service.NewAuthService(userRepo, auditRepo)
	patientService := service.NewPatientService(patientRepo, auditRepo, registry)
	surgeryService := service.NewSurgeryService(surgeryRepo, auditRepo, registry)
	scheduleService := service.NewScheduleService(scheduleRepo)
	importService := service.NewImportService(patientRepo)

	// 6. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 7. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	surgeryHandler := handler.NewSurgeryHandler(surgeryService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	importHandler := handler.NewImportHandler(importService)

	// 9. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "surgitrack-backend",
		})
	})

	// Public display board. No authentication so the OR lobby TV can poll it.
	r.GET("/patients/public", patientHandler.PublicDisplay)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(), authHandler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
		auth.GET("/sessions", middleware.AuthMiddleware(), middleware.RequireAdmin(), authHandler.Sessions)
	}

	// Patient routes (authenticated)
	patients := r.Group("/patients")
	patients.Use(middleware.AuthMiddleware())
	{
		patients.GET("", patientHandler.ListPatients)
		patients.POST("", patientHandler.CreatePatient)
		patients.GET("/today", patientHandler.ListToday)
		patients.GET("/stats", patientHandler.Stats)
		patients.GET("/:id", patientHandler.GetPatient)
		patients.PUT("/:id", patientHandler.UpdatePatient)
		patients.PATCH("/:id/status", patientHandler.UpdateStatus)
		patients.GET("/:id/history", patientHandler.History)
		patients.DELETE("/:id", middleware.RequireAdmin(), patientHandler.DeletePatient)
	}

	// Spreadsheet import (authenticated)
	imports := r.Group("/import")
	imports.Use(middleware.AuthMiddleware())
	{
		imports.POST("/excel", importHandler.ImportPatients)
	}

	// Surgery registration routes (authenticated)
	surgery := r.Group("/surgery")
	surgery.Use(middleware.AuthMiddleware())
	{
		surgery.POST("/register", surgeryHandler.Register)
		surgery.POST("/register/bulk", surgeryHandler.RegisterBulk)
		surgery.GET("/check-hn/:hn", surgeryHandler.CheckHN)
		surgery.GET("/today", surgeryHandler.ListToday)
		surgery.GET("/date/:date", surgeryHandler.ListByDate)
		surgery.GET("/elective/:date", surgeryHandler.ListElective)
		surgery.GET("/emergency/:date", surgeryHandler.ListEmergency)
		surgery.GET("/:id", surgeryHandler.GetSurgery)
		surgery.PUT("/:id", surgeryHandler.UpdateSurgery)
		surgery.PATCH("/:id/status", surgeryHandler.UpdateStatus)
		surgery.GET("/:id/history", surgeryHandler.History)
		surgery.DELETE("/:id", middleware.RequireAdmin(), surgeryHandler.DeleteSurgery)
		surgery.POST("/reset", middleware.RequireAdmin(), surgeryHandler.ResetAll)
	}

	// Work schedule routes (authenticated)
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.POST("", scheduleHandler.Upsert)
		schedules.GET("/date/:date", scheduleHandler.GetByDate)
		schedules.GET("/date/:date/:shift_type", scheduleHandler.GetByDateAndShift)
		schedules.GET("/month/:year/:month", scheduleHandler.GetByMonth)
		schedules.DELETE("/date/:date/:shift_type", middleware.RequireAdmin(), scheduleHandler.Delete)
	}

	// 10. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
