package service

import (
	"context"
	"fmt"
	"log"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
)

type HotelService struct {
	hotelRepo     *repository.HotelRepository
	userHotelRepo *repository.UserHotelRepository
	audit         AuditRecorder
}

func NewHotelService(
	hotelRepo *repository.HotelRepository,
	userHotelRepo *repository.UserHotelRepository,
	audit AuditRecorder,
) *HotelService {
	return &HotelService{
		hotelRepo:     hotelRepo,
		userHotelRepo: userHotelRepo,
		audit:         audit,
	}
}

// HotelUpdate carries the fields of a partial hotel update; nil fields are left unchanged
type HotelUpdate struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	District   *string `json:"district"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postalcode"`
	Tel        *string `json:"tel"`
	Region     *string `json:"region"`
}

func (u HotelUpdate) apply(h *models.Hotel) {
	setIf(&h.Name, u.Name)
	setIf(&h.Address, u.Address)
	setIf(&h.District, u.District)
	setIf(&h.Province, u.Province)
	setIf(&h.PostalCode, u.PostalCode)
	setIf(&h.Tel, u.Tel)
	setIf(&h.Region, u.Region)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ListHotels returns one page of hotels matching the query
func (s *HotelService) ListHotels(ctx context.Context, q repository.ListQuery) ([]models.Hotel, int64, error) {
	return s.hotelRepo.ListHotels(ctx, q)
}

func (s *HotelService) GetHotel(ctx context.Context, id uint) (*models.Hotel, error) {
	return s.hotelRepo.GetHotelByID(ctx, id)
}

// ManagedHotels returns the hotels the actor is a manager of
func (s *HotelService) ManagedHotels(ctx context.Context, actor authz.Actor) ([]models.Hotel, error) {
	ids, err := s.userHotelRepo.GetUserHotels(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.hotelRepo.GetHotelsByIDs(ctx, ids)
}

// CreateHotel creates a hotel (admin only)
func (s *HotelService) CreateHotel(ctx context.Context, actor authz.Actor, hotel *models.Hotel) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("User role %s is not authorized to access this route", actor.Role)
	}
	hotel.ID = 0
	if err := validateModel(hotel); err != nil {
		return err
	}
	if err := s.hotelRepo.CreateHotel(ctx, hotel); err != nil {
		return err
	}

	s.record(ctx, actor, "hotel_create", hotel.ID, fmt.Sprintf("Created hotel: %s", hotel.Name))
	return nil
}

// UpdateHotel applies a partial update for admins and managers of the hotel
func (s *HotelService) UpdateHotel(ctx context.Context, actor authz.Actor, id uint, update HotelUpdate) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetHotelByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAct(actor, authz.Hotel(id), authz.ActionUpdate) {
		return nil, apperror.Forbidden("Access denied. You do not have permission to manage this hotel.")
	}

	update.apply(hotel)
	if err := validateModel(hotel); err != nil {
		return nil, err
	}
	if err := s.hotelRepo.UpdateHotel(ctx, hotel); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "hotel_update", hotel.ID, fmt.Sprintf("Updated hotel: %s (ID: %d)", hotel.Name, hotel.ID))
	return hotel, nil
}

// DeleteHotel removes a hotel with its room types and bookings (admin only)
func (s *HotelService) DeleteHotel(ctx context.Context, actor authz.Actor, id uint) error {
	hotel, err := s.hotelRepo.GetHotelByID(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.NotFound("Hotel not found with id of %d", id)
		}
		return err
	}
	if !authz.CanAct(actor, authz.Hotel(id), authz.ActionDelete) {
		return apperror.Forbidden("User role %s is not authorized to access this route", actor.Role)
	}

	if err := s.hotelRepo.DeleteHotel(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actor, "hotel_delete", id, fmt.Sprintf("Deleted hotel: %s (ID: %d)", hotel.Name, id))
	return nil
}

func (s *HotelService) record(ctx context.Context, actor authz.Actor, action string, id uint, details string) {
	recordAudit(ctx, s.audit, actor, action, authz.KindHotel, id, details)
}

// recordAudit writes an audit entry; failures are logged and never fail the operation
func recordAudit(ctx context.Context, audit AuditRecorder, actor authz.Actor, action string, kind authz.Kind, id uint, details string) {
	actorID := actor.ID
	entry := &models.AuditLog{
		UserID:     &actorID,
		Action:     action,
		Resource:   string(kind),
		ResourceID: id,
		Details:    details,
	}
	if err := audit.CreateAuditLog(ctx, entry); err != nil {
		log.Printf("Warning: failed to write audit log for %s: %v", action, err)
	}
}
