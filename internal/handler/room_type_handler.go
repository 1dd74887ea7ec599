package handler

import (
	"net/http"

	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/service"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RoomTypeHandler struct {
	roomTypeService *service.RoomTypeService
}

func NewRoomTypeHandler(roomTypeService *service.RoomTypeService) *RoomTypeHandler {
	return &RoomTypeHandler{
		roomTypeService: roomTypeService,
	}
}

func (h *RoomTypeHandler) GetRoomTypes(c *gin.Context) {
	roomTypes, err := h.roomTypeService.ListRoomTypes(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, roomTypes)
}

func (h *RoomTypeHandler) GetRoomType(c *gin.Context) {
	id, ok := pathID(c, "id", "room type")
	if !ok {
		return
	}

	roomType, err := h.roomTypeService.GetRoomType(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, roomType)
}

// GetHotelRoomTypes lists every room type of the hotel named by :hotelId
func (h *RoomTypeHandler) GetHotelRoomTypes(c *gin.Context) {
	hotelID, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}

	roomTypes, err := h.roomTypeService.ListHotelRoomTypes(c.Request.Context(), hotelID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, roomTypes)
}

// CreateRoomType creates a room type; under /hotels/:hotelId the path decides the hotel
func (h *RoomTypeHandler) CreateRoomType(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	// room types start activated unless the body says otherwise
	roomType := models.RoomType{IsAvailable: true}
	if !bindJSON(c, &roomType) {
		return
	}
	if c.Param("hotelId") != "" {
		hotelID, ok := pathID(c, "hotelId", "hotel")
		if !ok {
			return
		}
		roomType.HotelID = hotelID
	}

	if err := h.roomTypeService.CreateRoomType(c.Request.Context(), actor, &roomType); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, roomType)
}

// UpdateRoomType applies a partial update, including activation and total rooms
func (h *RoomTypeHandler) UpdateRoomType(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "room type")
	if !ok {
		return
	}
	var update service.RoomTypeUpdate
	if !bindJSON(c, &update) {
		return
	}

	roomType, err := h.roomTypeService.UpdateRoomType(c.Request.Context(), actor, id, update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, roomType)
}

// DeleteRoomType removes a room type and the bookings made against it
func (h *RoomTypeHandler) DeleteRoomType(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "room type")
	if !ok {
		return
	}

	if err := h.roomTypeService.DeleteRoomType(c.Request.Context(), actor, id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{})
}
