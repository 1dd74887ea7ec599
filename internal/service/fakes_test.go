package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

type fakeHotels struct {
	hotels []models.Hotel
	err    error
}

func (f *fakeHotels) GetHotelByID(_ context.Context, id uint) (*models.Hotel, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.hotels {
		if f.hotels[i].ID == id {
			hotel := f.hotels[i]
			return &hotel, nil
		}
	}
	return nil, apperror.NotFound("Hotel not found")
}

func (f *fakeHotels) GetAllHotels(context.Context) ([]models.Hotel, error) {
	return f.hotels, f.err
}

type fakeRoomTypes struct {
	roomTypes []models.RoomType
	err       error
}

func (f *fakeRoomTypes) GetRoomTypeByID(_ context.Context, id uint) (*models.RoomType, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.roomTypes {
		if f.roomTypes[i].ID == id {
			rt := f.roomTypes[i]
			return &rt, nil
		}
	}
	return nil, apperror.NotFound("Room type not found")
}

func (f *fakeRoomTypes) GetRoomTypesByHotelID(_ context.Context, hotelID uint) ([]models.RoomType, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.RoomType
	for _, rt := range f.roomTypes {
		if rt.HotelID == hotelID {
			out = append(out, rt)
		}
	}
	return out, nil
}

// fakeBookings keeps bookings in memory and mirrors the repository semantics
type fakeBookings struct {
	mu       sync.Mutex
	bookings []models.Booking
	nextID   uint
	findErr  error
	// failRoomType makes FindOverlappingBookings fail for one room type only
	failRoomType uint
	lookups      int
	// roomTypes backs the capacity check run inside writes
	roomTypes *fakeRoomTypes
	// beforeWrite runs at the start of a write, before the store lock is taken
	beforeWrite func()
}

func (f *fakeBookings) add(userID, hotelID, roomTypeID uint, checkin, checkout time.Time) models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b := models.Booking{ID: f.nextID, UserID: userID, HotelID: hotelID, RoomTypeID: roomTypeID, CheckinDate: checkin, CheckoutDate: checkout}
	f.bookings = append(f.bookings, b)
	return b
}

func (f *fakeBookings) FindOverlappingBookings(_ context.Context, roomTypeID uint, start, end time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.findErr != nil && (f.failRoomType == 0 || f.failRoomType == roomTypeID) {
		return nil, f.findErr
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.RoomTypeID == roomTypeID && b.CheckinDate.Before(end) && b.CheckoutDate.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) GetBookings(_ context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if filter.UserID != 0 && b.UserID != filter.UserID {
			continue
		}
		if filter.HotelID != 0 && b.HotelID != filter.HotelID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) GetBookingByID(_ context.Context, id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			booking := b
			return &booking, nil
		}
	}
	return nil, apperror.NotFound("Booking not found")
}

func (f *fakeBookings) CountBookingsByUser(_ context.Context, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, b := range f.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookings) CreateBookingWithinQuota(ctx context.Context, booking *models.Booking, quota int, fits repository.CapacityCheck) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int
	for _, b := range f.bookings {
		if b.UserID == booking.UserID {
			count++
		}
	}
	if quota > 0 && count >= quota {
		return repository.ErrQuotaReached
	}
	if err := f.checkCapacity(ctx, booking, 0, fits); err != nil {
		return err
	}
	f.nextID++
	booking.ID = f.nextID
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookings) UpdateBookingDates(ctx context.Context, booking *models.Booking, checkin, checkout time.Time, fits repository.CapacityCheck) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	moved := *booking
	moved.CheckinDate, moved.CheckoutDate = checkin, checkout
	if err := f.checkCapacity(ctx, &moved, booking.ID, fits); err != nil {
		return err
	}
	for i := range f.bookings {
		if f.bookings[i].ID == booking.ID {
			f.bookings[i].CheckinDate, f.bookings[i].CheckoutDate = checkin, checkout
		}
	}
	return nil
}

// checkCapacity mirrors the repository's in-transaction check; the caller holds f.mu
func (f *fakeBookings) checkCapacity(ctx context.Context, booking *models.Booking, excludeID uint, fits repository.CapacityCheck) error {
	if fits == nil {
		return nil
	}
	roomType, err := f.roomTypes.GetRoomTypeByID(ctx, booking.RoomTypeID)
	if err != nil {
		return err
	}
	var overlapping []models.Booking
	for _, b := range f.bookings {
		if b.ID != excludeID && b.RoomTypeID == booking.RoomTypeID &&
			b.CheckinDate.Before(booking.CheckoutDate) && b.CheckoutDate.After(booking.CheckinDate) {
			overlapping = append(overlapping, b)
		}
	}
	return fits(*roomType, overlapping)
}

func (f *fakeBookings) DeleteBooking(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.bookings[:0]
	for _, b := range f.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	f.bookings = kept
	return nil
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
	err     error
}

func (f *fakeAudit) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return f.err
}
