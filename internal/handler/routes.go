package handler

import (
	"hotel-booking-api/internal/middleware"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler mounted by RegisterRoutes
type Handlers struct {
	Auth         *AuthHandler
	Hotel        *HotelHandler
	RoomType     *RoomTypeHandler
	Booking      *BookingHandler
	Availability *AvailabilityHandler
	Account      *AccountHandler
}

// RegisterRoutes mounts the API under /api/v1. protect authenticates the caller.
func RegisterRoutes(r *gin.Engine, h Handlers, protect gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hotel-booking-api",
		})
	})

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", protect, h.Auth.Me)
	}

	availability := api.Group("/availability")
	{
		availability.GET("/room-types", h.Availability.GetAvailableRoomTypes)
		availability.GET("/hotels", h.Availability.GetAvailableHotels)
		availability.GET("/hotels/:hotelId", h.Availability.GetHotelAvailability)
	}

	hotels := api.Group("/hotels")
	{
		hotels.GET("", h.Hotel.GetHotels)
		hotels.POST("", protect, adminOnly, h.Hotel.CreateHotel)
		hotels.GET("/:hotelId", h.Hotel.GetHotel)
		hotels.PUT("/:hotelId", protect, adminOnly, h.Hotel.UpdateHotel)
		hotels.DELETE("/:hotelId", protect, adminOnly, h.Hotel.DeleteHotel)

		hotels.GET("/:hotelId/bookings", protect, h.Booking.GetBookings)
		hotels.POST("/:hotelId/bookings", protect, middleware.RequireRole(models.RoleUser, models.RoleAdmin), h.Booking.AddBooking)
	}

	bookings := api.Group("/bookings", protect)
	{
		bookings.GET("", h.Booking.GetBookings)
		bookings.GET("/:id", h.Booking.GetBooking)
		bookings.PUT("/:id", h.Booking.UpdateBooking)
		bookings.DELETE("/:id", h.Booking.DeleteBooking)
	}

	roomTypes := api.Group("/roomtypes")
	{
		roomTypes.GET("", h.RoomType.GetRoomTypes)
		roomTypes.POST("", protect, adminOnly, h.RoomType.CreateRoomType)
		roomTypes.GET("/:id", h.RoomType.GetRoomType)
		roomTypes.PUT("/:id", protect, adminOnly, h.RoomType.UpdateRoomType)
		roomTypes.DELETE("/:id", protect, adminOnly, h.RoomType.DeleteRoomType)
	}

	users := api.Group("/users", protect)
	{
		users.GET("", adminOnly, h.Account.GetUsers)
		users.GET("/:id", h.Account.GetUser)
		users.PUT("/:id", adminOnly, h.Account.UpdateUser)
		users.DELETE("/:id", adminOnly, h.Account.DeleteUser)
		users.POST("/:id/hotels/:hotelId", adminOnly, h.Account.AssignHotel)
		users.DELETE("/:id/hotels/:hotelId", adminOnly, h.Account.RemoveHotel)
	}

	manager := api.Group("/manager", protect, middleware.RequireRole(models.RoleManager))
	{
		manager.GET("/hotels", h.Hotel.GetManagedHotels)
		manager.PUT("/hotels/:hotelId", middleware.CheckHotelAccess(), h.Hotel.UpdateHotel)
		manager.GET("/hotels/:hotelId/bookings", middleware.CheckHotelAccess(), h.Booking.GetHotelBookings)
		manager.GET("/hotels/:hotelId/roomtypes", middleware.CheckHotelAccess(), h.RoomType.GetHotelRoomTypes)
		manager.POST("/hotels/:hotelId/roomtypes", middleware.CheckHotelAccess(), h.RoomType.CreateRoomType)
		manager.PUT("/roomtypes/:id", h.RoomType.UpdateRoomType)
		manager.DELETE("/roomtypes/:id", h.RoomType.DeleteRoomType)
		manager.PUT("/bookings/:id", h.Booking.UpdateBooking)
		manager.DELETE("/bookings/:id", h.Booking.DeleteBooking)
	}
}
