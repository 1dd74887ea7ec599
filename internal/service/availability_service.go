package service

import (
	"context"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/models"

	"golang.org/x/sync/errgroup"
)

type AvailabilityService struct {
	hotels      HotelReader
	roomTypes   RoomTypeReader
	bookings    OccupancyReader
	concurrency int
}

func NewAvailabilityService(
	hotels HotelReader,
	roomTypes RoomTypeReader,
	bookings OccupancyReader,
	concurrency int,
) *AvailabilityService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &AvailabilityService{
		hotels:      hotels,
		roomTypes:   roomTypes,
		bookings:    bookings,
		concurrency: concurrency,
	}
}

// CheckAvailability computes the availability of one room type for [checkIn, checkOut)
func (s *AvailabilityService) CheckAvailability(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (*models.AvailabilityResult, error) {
	return s.CheckAvailabilityExcluding(ctx, roomTypeID, checkIn, checkOut, 0)
}

// CheckAvailabilityExcluding is CheckAvailability ignoring one booking, used when an existing
// booking is moved to new dates
func (s *AvailabilityService) CheckAvailabilityExcluding(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time, excludeBookingID uint) (*models.AvailabilityResult, error) {
	roomType, err := s.roomTypes.GetRoomTypeByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	result, err := s.evaluate(ctx, roomType, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// evaluate applies the room type metadata to the occupancy of its bookings
func (s *AvailabilityService) evaluate(ctx context.Context, roomType *models.RoomType, checkIn, checkOut time.Time, excludeBookingID uint) (models.AvailabilityResult, error) {
	result := models.AvailabilityResult{
		RoomTypeID:  roomType.ID,
		TotalRooms:  roomType.TotalRooms,
		IsActivated: roomType.IsAvailable,
		RoomTypeDetails: models.RoomTypeDetails{
			Name:      roomType.Name,
			Capacity:  roomType.Capacity,
			BedType:   roomType.BedType,
			BasePrice: roomType.BasePrice,
			Currency:  roomType.Currency,
		},
	}

	// deactivation dominates occupancy
	if !roomType.IsAvailable {
		result.Status = models.StatusUnderMaintenance
		return result, nil
	}

	bookings, err := s.bookings.FindOverlappingBookings(ctx, roomType.ID, checkIn, checkOut)
	if err != nil {
		return result, err
	}
	if excludeBookingID != 0 {
		kept := make([]models.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.ID != excludeBookingID {
				kept = append(kept, b)
			}
		}
		bookings = kept
	}

	daily := ResolveOccupancy(bookings, checkIn, checkOut)
	result.DailyBookings = daily
	result.BookedRooms = PeakOccupancy(daily)
	result.AvailableRooms = max(roomType.TotalRooms-result.BookedRooms, 0)
	result.IsAvailable = result.AvailableRooms > 0

	if result.AvailableRooms <= 0 {
		result.Status = models.StatusFullyBooked
	} else {
		result.Status = models.StatusAvailable
	}

	return result, nil
}

// CheckHotelAvailability evaluates every room type of a hotel concurrently.
// The first failing evaluation fails the whole query.
func (s *AvailabilityService) CheckHotelAvailability(ctx context.Context, hotelID uint, checkIn, checkOut time.Time) (*models.HotelAvailability, error) {
	hotel, err := s.hotels.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return s.hotelAvailability(ctx, hotel, checkIn, checkOut)
}

func (s *AvailabilityService) hotelAvailability(ctx context.Context, hotel *models.Hotel, checkIn, checkOut time.Time) (*models.HotelAvailability, error) {
	roomTypes, err := s.roomTypes.GetRoomTypesByHotelID(ctx, hotel.ID)
	if err != nil {
		return nil, err
	}

	results := make([]models.AvailabilityResult, len(roomTypes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range roomTypes {
		g.Go(func() error {
			result, err := s.evaluate(gctx, &roomTypes[i], checkIn, checkOut, 0)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	availability := &models.HotelAvailability{
		HotelID:            hotel.ID,
		HotelName:          hotel.Name,
		HotelAddress:       hotel.Address,
		RoomTypeResults:    results,
		AvailableRoomTypes: []models.AvailabilityResult{},
	}
	for _, result := range results {
		if result.IsActivated && result.AvailableRooms > 0 {
			availability.HasAvailableRooms = true
		}
		if result.Status == models.StatusAvailable {
			availability.AvailableRoomTypes = append(availability.AvailableRoomTypes, result)
		}
	}

	return availability, nil
}

// AvailableRoomTypes lists the availability of the activated room types of a hotel
func (s *AvailabilityService) AvailableRoomTypes(ctx context.Context, hotelID uint, checkIn, checkOut time.Time) ([]models.AvailabilityResult, error) {
	availability, err := s.CheckHotelAvailability(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if len(availability.RoomTypeResults) == 0 {
		return nil, apperror.NotFound("No room types found for this hotel")
	}

	activated := []models.AvailabilityResult{}
	for _, result := range availability.RoomTypeResults {
		if result.IsActivated {
			activated = append(activated, result)
		}
	}
	return activated, nil
}

// SearchAvailableHotels returns the hotels with at least one bookable room type, in store order
func (s *AvailabilityService) SearchAvailableHotels(ctx context.Context, checkIn, checkOut time.Time) ([]models.HotelAvailability, error) {
	hotels, err := s.hotels.GetAllHotels(ctx)
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		return nil, apperror.NotFound("No hotels found")
	}

	perHotel := make([]*models.HotelAvailability, len(hotels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range hotels {
		g.Go(func() error {
			availability, err := s.hotelAvailability(gctx, &hotels[i], checkIn, checkOut)
			if err != nil {
				return err
			}
			perHotel[i] = availability
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	available := []models.HotelAvailability{}
	for _, availability := range perHotel {
		if availability.HasAvailableRooms {
			available = append(available, *availability)
		}
	}
	return available, nil
}
