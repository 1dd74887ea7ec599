package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
)

// AvailabilityChecker is the part of the availability engine admission depends on
type AvailabilityChecker interface {
	CheckAvailabilityExcluding(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID uint) (*models.AvailabilityResult, error)
}

type BookingService struct {
	hotels       HotelReader
	roomTypes    RoomTypeReader
	bookings     BookingStore
	availability AvailabilityChecker
	audit        AuditRecorder
	quota        int
}

func NewBookingService(
	hotels HotelReader,
	roomTypes RoomTypeReader,
	bookings BookingStore,
	availability AvailabilityChecker,
	audit AuditRecorder,
	quota int,
) *BookingService {
	return &BookingService{
		hotels:       hotels,
		roomTypes:    roomTypes,
		bookings:     bookings,
		availability: availability,
		audit:        audit,
		quota:        quota,
	}
}

// AdmissionRequest is a request to book one room of a room type
type AdmissionRequest struct {
	TargetUserID uint
	HotelID      uint
	RoomTypeID   uint
	CheckinDate  time.Time
	CheckoutDate time.Time
}

// AdmitBooking enforces ownership, quota and availability before persisting a booking
func (s *BookingService) AdmitBooking(ctx context.Context, actor authz.Actor, req AdmissionRequest) (*models.Booking, error) {
	if _, err := s.hotels.GetHotelByID(ctx, req.HotelID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("No hotel with the id of %d", req.HotelID)
		}
		return nil, err
	}

	target := authz.Resource{Kind: authz.KindBooking, OwnerID: req.TargetUserID, HotelID: req.HotelID}
	if !authz.CanAct(actor, target, authz.ActionCreate) {
		return nil, apperror.Forbidden("You are not authorized to make this booking")
	}

	// fail fast before touching availability; the authoritative check runs with the insert
	quota := s.quotaFor(actor)
	if quota > 0 {
		count, err := s.bookings.CountBookingsByUser(ctx, req.TargetUserID)
		if err != nil {
			return nil, err
		}
		if count >= int64(quota) {
			return nil, s.quotaError(req.TargetUserID)
		}
	}

	if err := ValidateStay(req.CheckinDate, req.CheckoutDate); err != nil {
		return nil, err
	}
	checkin, checkout := calendarDay(req.CheckinDate), calendarDay(req.CheckoutDate)

	roomType, err := s.roomTypes.GetRoomTypeByID(ctx, req.RoomTypeID)
	if err != nil || roomType.HotelID != req.HotelID {
		if err == nil || apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("No room type with the id of %d in hotel %d", req.RoomTypeID, req.HotelID)
		}
		return nil, err
	}

	if err := s.ensureAvailable(ctx, roomType.ID, checkin, checkout, 0); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:       req.TargetUserID,
		HotelID:      req.HotelID,
		RoomTypeID:   roomType.ID,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
	}
	if err := s.bookings.CreateBookingWithinQuota(ctx, booking, quota, s.fits(checkin, checkout)); err != nil {
		if errors.Is(err, repository.ErrQuotaReached) {
			return nil, s.quotaError(req.TargetUserID)
		}
		return nil, err
	}

	s.record(ctx, actor, "booking_create", booking.ID,
		fmt.Sprintf("Booked room type %d at hotel %d for user %d (%s to %s)",
			booking.RoomTypeID, booking.HotelID, booking.UserID,
			checkin.Format(time.DateOnly), checkout.Format(time.DateOnly)))

	return booking, nil
}

// ListBookings returns the actor's own bookings, or for admins every booking
// optionally narrowed to one hotel
func (s *BookingService) ListBookings(ctx context.Context, actor authz.Actor, hotelID uint) ([]models.Booking, error) {
	if !actor.IsAdmin() {
		return s.bookings.GetBookings(ctx, repository.BookingFilter{UserID: actor.ID})
	}
	return s.bookings.GetBookings(ctx, repository.BookingFilter{HotelID: hotelID})
}

// ListHotelBookings returns every booking of a hotel for its managers and admins
func (s *BookingService) ListHotelBookings(ctx context.Context, actor authz.Actor, hotelID uint) ([]models.Booking, error) {
	scope := authz.Resource{Kind: authz.KindBooking, HotelID: hotelID}
	if !authz.CanAct(actor, scope, authz.ActionRead) {
		return nil, apperror.Forbidden("Access denied. You do not have permission to manage this hotel.")
	}
	return s.bookings.GetBookings(ctx, repository.BookingFilter{HotelID: hotelID})
}

// GetBooking retrieves a booking the actor may read
func (s *BookingService) GetBooking(ctx context.Context, actor authz.Actor, id uint) (*models.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAct(actor, authz.Booking(booking), authz.ActionRead) {
		return nil, apperror.Forbidden("You are not authorized to view this booking")
	}
	return booking, nil
}

// UpdateBooking moves a booking to new dates. Dates and availability are re-validated,
// the quota is not.
func (s *BookingService) UpdateBooking(ctx context.Context, actor authz.Actor, id uint, checkinDate, checkoutDate time.Time) (*models.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAct(actor, authz.Booking(booking), authz.ActionUpdate) {
		return nil, apperror.Forbidden("You are not authorized to update this booking")
	}

	if err := ValidateStay(checkinDate, checkoutDate); err != nil {
		return nil, err
	}
	checkin, checkout := calendarDay(checkinDate), calendarDay(checkoutDate)

	if err := s.ensureAvailable(ctx, booking.RoomTypeID, checkin, checkout, booking.ID); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateBookingDates(ctx, booking, checkin, checkout, s.fits(checkin, checkout)); err != nil {
		return nil, err
	}
	booking.CheckinDate, booking.CheckoutDate = checkin, checkout

	s.record(ctx, actor, "booking_update", booking.ID,
		fmt.Sprintf("Moved booking %d to %s - %s", booking.ID, checkin.Format(time.DateOnly), checkout.Format(time.DateOnly)))

	return booking, nil
}

// DeleteBooking removes a booking owned by, or under the authority of, the actor
func (s *BookingService) DeleteBooking(ctx context.Context, actor authz.Actor, id uint) error {
	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanAct(actor, authz.Booking(booking), authz.ActionDelete) {
		return apperror.Forbidden("You are not authorized to delete this booking")
	}

	if err := s.bookings.DeleteBooking(ctx, booking.ID); err != nil {
		return err
	}

	s.record(ctx, actor, "booking_delete", booking.ID,
		fmt.Sprintf("Deleted booking %d of user %d at hotel %d", booking.ID, booking.UserID, booking.HotelID))
	return nil
}

func (s *BookingService) find(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookings.GetBookingByID(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("No Booking with the id of %d", id)
		}
		return nil, err
	}
	return booking, nil
}

// ensureAvailable rejects stays that would overbook the room type. It runs before the write
// so the caller gets the evaluator's answer; fits repeats the decision inside the transaction.
func (s *BookingService) ensureAvailable(ctx context.Context, roomTypeID uint, checkin, checkout time.Time, excludeBookingID uint) error {
	result, err := s.availability.CheckAvailabilityExcluding(ctx, roomTypeID, checkin, checkout, excludeBookingID)
	if err != nil {
		return err
	}
	if !result.IsActivated {
		return maintenanceError(roomTypeID)
	}
	if !result.IsAvailable {
		return fullyBookedError(roomTypeID)
	}
	return nil
}

// fits is the capacity check run inside the booking write for the stay [checkin, checkout)
func (s *BookingService) fits(checkin, checkout time.Time) repository.CapacityCheck {
	return func(roomType models.RoomType, overlapping []models.Booking) error {
		if !roomType.IsAvailable {
			return maintenanceError(roomType.ID)
		}
		if PeakOccupancy(ResolveOccupancy(overlapping, checkin, checkout)) >= roomType.TotalRooms {
			return fullyBookedError(roomType.ID)
		}
		return nil
	}
}

func maintenanceError(roomTypeID uint) error {
	return apperror.Conflict("Room type %d is under maintenance", roomTypeID)
}

func fullyBookedError(roomTypeID uint) error {
	return apperror.Conflict("No rooms of type %d are available for the selected dates", roomTypeID)
}

// quotaFor returns the booking quota applied to the actor; admins are unlimited
func (s *BookingService) quotaFor(actor authz.Actor) int {
	if actor.IsAdmin() {
		return 0
	}
	return s.quota
}

func (s *BookingService) quotaError(userID uint) error {
	return apperror.QuotaExceeded("The user with ID %d has already made %d Bookings", userID, s.quota)
}

func (s *BookingService) record(ctx context.Context, actor authz.Actor, action string, bookingID uint, details string) {
	recordAudit(ctx, s.audit, actor, action, authz.KindBooking, bookingID, details)
}
