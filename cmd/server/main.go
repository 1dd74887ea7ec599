package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-booking-api/internal/config"
	"hotel-booking-api/internal/database"
	"hotel-booking-api/internal/handler"
	"hotel-booking-api/internal/middleware"
	"hotel-booking-api/internal/repository"
	"hotel-booking-api/internal/service"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT issuer with config
	tokens := utils.NewTokenIssuer(
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection
	db := repository.NewDB(database.Connect(cfg), cfg.Availability.StoreTimeout)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	roomTypeRepo := repository.NewRoomTypeRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userHotelRepo := repository.NewUserHotelRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, tokens, auditRepo)
	accountService := service.NewAccountService(userRepo, hotelRepo, userHotelRepo, auditRepo)
	hotelService := service.NewHotelService(hotelRepo, userHotelRepo, auditRepo)
	roomTypeService := service.NewRoomTypeService(roomTypeRepo, hotelRepo, auditRepo)
	availabilityService := service.NewAvailabilityService(hotelRepo, roomTypeRepo, bookingRepo, cfg.Availability.Concurrency)
	bookingService := service.NewBookingService(hotelRepo, roomTypeRepo, bookingRepo, availabilityService, auditRepo, cfg.Booking.Quota)
	workerService := service.NewWorkerService(userRepo, cfg.Worker.TokenPurgeInterval)

	// 6. Start background worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go workerService.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers and routes
	handler.RegisterRoutes(r, handler.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg.JWT.RefreshTokenExpiry, cfg.Server.GinMode == gin.ReleaseMode),
		Hotel:        handler.NewHotelHandler(hotelService),
		RoomType:     handler.NewRoomTypeHandler(roomTypeService),
		Booking:      handler.NewBookingHandler(bookingService),
		Availability: handler.NewAvailabilityHandler(availabilityService),
		Account:      handler.NewAccountHandler(accountService),
	}, middleware.AuthMiddleware(tokens, accountService))

	// 10. Setup graceful shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel background worker context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
