package handler

import (
	"context"

	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/repository"
	"hotel-booking-api/internal/service"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetUsers lists accounts with filters, sorting and pagination (admin only)
func (h *AccountHandler) GetUsers(c *gin.Context) {
	q, err := repository.ParseListQuery(c.Request.URL.Query(), repository.UserQuerySchema)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	users, total, err := h.accountService.ListAccounts(c.Request.Context(), q)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PagedResponse(c, users, len(users), q.Pagination(total))
}

func (h *AccountHandler) GetUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), actor, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, account)
}

func (h *AccountHandler) UpdateUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	var update service.AccountUpdate
	if !bindJSON(c, &update) {
		return
	}

	user, err := h.accountService.UpdateAccount(c.Request.Context(), actor, id, update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}

// DeleteUser removes an account with its bookings
func (h *AccountHandler) DeleteUser(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), actor, id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{})
}

// AssignHotel makes the manager :id responsible for :hotelId
func (h *AccountHandler) AssignHotel(c *gin.Context) {
	h.changeHotel(c, h.accountService.AssignHotel)
}

// RemoveHotel revokes the manager :id's responsibility for :hotelId
func (h *AccountHandler) RemoveHotel(c *gin.Context) {
	h.changeHotel(c, h.accountService.RemoveHotel)
}

func (h *AccountHandler) changeHotel(c *gin.Context, change func(ctx context.Context, actor authz.Actor, userID, hotelID uint) error) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}
	hotelID, ok := pathID(c, "hotelId", "hotel")
	if !ok {
		return
	}

	if err := change(c.Request.Context(), actor, userID, hotelID); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"userId": userID, "hotelId": hotelID})
}
