package service

import (
	"context"
	"fmt"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
)

type RoomTypeService struct {
	roomTypeRepo *repository.RoomTypeRepository
	hotelRepo    *repository.HotelRepository
	audit        AuditRecorder
}

func NewRoomTypeService(
	roomTypeRepo *repository.RoomTypeRepository,
	hotelRepo *repository.HotelRepository,
	audit AuditRecorder,
) *RoomTypeService {
	return &RoomTypeService{
		roomTypeRepo: roomTypeRepo,
		hotelRepo:    hotelRepo,
		audit:        audit,
	}
}

// RoomTypeUpdate carries the fields of a partial room type update. The owning hotel
// cannot be changed.
type RoomTypeUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Capacity    *int     `json:"capacity"`
	BedType     *string  `json:"bed_type"`
	Size        *string  `json:"size"`
	BasePrice   *float64 `json:"base_price"`
	Currency    *string  `json:"currency"`
	TotalRooms  *int     `json:"total_rooms"`
	IsAvailable *bool    `json:"is_available"`
}

func (u RoomTypeUpdate) apply(rt *models.RoomType) {
	setIf(&rt.Name, u.Name)
	setIf(&rt.Description, u.Description)
	setIf(&rt.Capacity, u.Capacity)
	setIf(&rt.BedType, u.BedType)
	setIf(&rt.Size, u.Size)
	setIf(&rt.BasePrice, u.BasePrice)
	setIf(&rt.Currency, u.Currency)
	setIf(&rt.TotalRooms, u.TotalRooms)
	setIf(&rt.IsAvailable, u.IsAvailable)
}

func (s *RoomTypeService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	return s.roomTypeRepo.GetAllRoomTypes(ctx)
}

// ListHotelRoomTypes returns the room types of one hotel, including deactivated ones
func (s *RoomTypeService) ListHotelRoomTypes(ctx context.Context, hotelID uint) ([]models.RoomType, error) {
	if _, err := s.hotelRepo.GetHotelByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.roomTypeRepo.GetRoomTypesByHotelID(ctx, hotelID)
}

func (s *RoomTypeService) GetRoomType(ctx context.Context, id uint) (*models.RoomType, error) {
	return s.roomTypeRepo.GetRoomTypeByID(ctx, id)
}

// CreateRoomType adds a room type to an existing hotel the actor may manage
func (s *RoomTypeService) CreateRoomType(ctx context.Context, actor authz.Actor, roomType *models.RoomType) error {
	roomType.ID = 0
	roomType.Hotel = nil
	if roomType.Currency == "" {
		roomType.Currency = "THB"
	}
	if err := validateModel(roomType); err != nil {
		return err
	}
	if !authz.CanAct(actor, authz.RoomType(roomType), authz.ActionCreate) {
		return apperror.Forbidden("Access denied. You do not have permission to manage this hotel.")
	}
	if _, err := s.hotelRepo.GetHotelByID(ctx, roomType.HotelID); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.NotFound("No hotel with the id of %d", roomType.HotelID)
		}
		return err
	}

	if err := s.roomTypeRepo.CreateRoomType(ctx, roomType); err != nil {
		return err
	}

	s.record(ctx, actor, "room_type_create", roomType.ID,
		fmt.Sprintf("Created room type %s in hotel %d with %d rooms", roomType.Name, roomType.HotelID, roomType.TotalRooms))
	return nil
}

// UpdateRoomType applies a partial update, including activation and inventory changes
func (s *RoomTypeService) UpdateRoomType(ctx context.Context, actor authz.Actor, id uint, update RoomTypeUpdate) (*models.RoomType, error) {
	roomType, err := s.roomTypeRepo.GetRoomTypeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAct(actor, authz.RoomType(roomType), authz.ActionUpdate) {
		return nil, apperror.Forbidden("Access denied. You do not have permission to manage this room type.")
	}

	update.apply(roomType)
	if err := validateModel(roomType); err != nil {
		return nil, err
	}
	if err := s.roomTypeRepo.UpdateRoomType(ctx, roomType); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "room_type_update", roomType.ID,
		fmt.Sprintf("Updated room type %s (ID: %d, rooms: %d, active: %t)", roomType.Name, roomType.ID, roomType.TotalRooms, roomType.IsAvailable))
	return roomType, nil
}

// DeleteRoomType removes a room type and its bookings
func (s *RoomTypeService) DeleteRoomType(ctx context.Context, actor authz.Actor, id uint) error {
	roomType, err := s.roomTypeRepo.GetRoomTypeByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanAct(actor, authz.RoomType(roomType), authz.ActionDelete) {
		return apperror.Forbidden("Access denied. You do not have permission to manage this room type.")
	}

	if err := s.roomTypeRepo.DeleteRoomType(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actor, "room_type_delete", id, fmt.Sprintf("Deleted room type %s of hotel %d", roomType.Name, roomType.HotelID))
	return nil
}

func (s *RoomTypeService) record(ctx context.Context, actor authz.Actor, action string, id uint, details string) {
	recordAudit(ctx, s.audit, actor, action, authz.KindRoomType, id, details)
}
