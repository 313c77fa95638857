package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hms-backend/config"
	"hms-backend/controllers"
	"hms-backend/routes"
	"hms-backend/services"
	"hms-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	admissionService := services.NewAdmissionService(db)
	lifecycleService := services.NewLifecycleService(db, admissionService)
	unitService := services.NewUnitService(db)
	customerService := services.NewCustomerService(db)
	paymentService := services.NewPaymentService(db, lifecycleService)
	refundService := services.NewRefundService(db)
	feedbackService := services.NewFeedbackService(db)
	staffService := services.NewStaffService(db)

	// Initialize controllers
	reservationController := controllers.NewReservationController(admissionService, lifecycleService)
	unitController := controllers.NewUnitController(unitService, admissionService)
	customerController := controllers.NewCustomerController(customerService)
	paymentController := controllers.NewPaymentController(paymentService)
	refundController := controllers.NewRefundController(refundService)
	feedbackController := controllers.NewFeedbackController(feedbackService)
	staffController := controllers.NewStaffController(staffService)
	settingsController := controllers.NewSettingsController(db)

	router := routes.SetupRouter(
		reservationController,
		unitController,
		customerController,
		paymentController,
		refundController,
		feedbackController,
		staffController,
		settingsController,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
