package handler

import (
	"net/http"

	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
	"hotel-booking-api/internal/service"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	hotelService *service.HotelService
}

func NewHotelHandler(hotelService *service.HotelService) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelService,
	}
}

// GetHotels lists hotels with filters, sorting and pagination from the query string
func (h *HotelHandler) GetHotels(c *gin.Context) {
	q, err := repository.ParseListQuery(c.Request.URL.Query(), repository.HotelQuerySchema)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	hotels, total, err := h.hotelService.ListHotels(c.Request.Context(), q)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.PagedResponse(c, hotels, len(hotels), q.Pagination(total))
}

func (h *HotelHandler) GetHotel(c *gin.Context) {
	id, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetHotel(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, hotel)
}

// CreateHotel creates a new hotel (admin only)
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var hotel models.Hotel
	if !bindJSON(c, &hotel) {
		return
	}

	if err := h.hotelService.CreateHotel(c.Request.Context(), actor, &hotel); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, hotel)
}

// DeleteHotel removes a hotel with its room types and bookings (admin only)
func (h *HotelHandler) DeleteHotel(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}

	if err := h.hotelService.DeleteHotel(c.Request.Context(), actor, id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{})
}

// UpdateHotel applies a partial update for admins and the hotel's managers
func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}
	var update service.HotelUpdate
	if !bindJSON(c, &update) {
		return
	}

	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), actor, id, update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, hotel)
}

// GetManagedHotels lists the hotels the caller manages
func (h *HotelHandler) GetManagedHotels(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	hotels, err := h.hotelService.ManagedHotels(c.Request.Context(), actor)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, hotels)
}
