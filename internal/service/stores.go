package service

import (
	"context"
	"time"

	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
)

// HotelReader is the hotel lookup used by availability and admission
type HotelReader interface {
	GetHotelByID(ctx context.Context, id uint) (*models.Hotel, error)
	GetAllHotels(ctx context.Context) ([]models.Hotel, error)
}

// RoomTypeReader is the room type lookup used by availability and admission
type RoomTypeReader interface {
	GetRoomTypeByID(ctx context.Context, id uint) (*models.RoomType, error)
	GetRoomTypesByHotelID(ctx context.Context, hotelID uint) ([]models.RoomType, error)
}

// OccupancyReader yields the bookings of a room type overlapping [start, end)
type OccupancyReader interface {
	FindOverlappingBookings(ctx context.Context, roomTypeID uint, start, end time.Time) ([]models.Booking, error)
}

// BookingStore is the persistence needed by the booking service
type BookingStore interface {
	GetBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
	GetBookingByID(ctx context.Context, id uint) (*models.Booking, error)
	CountBookingsByUser(ctx context.Context, userID uint) (int64, error)
	CreateBookingWithinQuota(ctx context.Context, booking *models.Booking, quota int, fits repository.CapacityCheck) error
	UpdateBookingDates(ctx context.Context, booking *models.Booking, checkin, checkout time.Time, fits repository.CapacityCheck) error
	DeleteBooking(ctx context.Context, id uint) error
}

// AuditRecorder stores audit log entries
type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
}
