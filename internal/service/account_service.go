package service

import (
	"context"
	"fmt"
	"strings"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
)

type AccountService struct {
	userRepo      *repository.UserRepository
	hotelRepo     *repository.HotelRepository
	userHotelRepo *repository.UserHotelRepository
	audit         AuditRecorder
}

func NewAccountService(
	userRepo *repository.UserRepository,
	hotelRepo *repository.HotelRepository,
	userHotelRepo *repository.UserHotelRepository,
	audit AuditRecorder,
) *AccountService {
	return &AccountService{
		userRepo:      userRepo,
		hotelRepo:     hotelRepo,
		userHotelRepo: userHotelRepo,
		audit:         audit,
	}
}

// AccountUpdate carries the fields of a partial account update
type AccountUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Tel   *string `json:"tel"`
	Role  *string `json:"role"`
}

// Account is a user together with the hotels they manage
type Account struct {
	models.User
	ManagedHotels []uint `json:"managed_hotels,omitempty"`
}

func (s *AccountService) ListAccounts(ctx context.Context, q repository.ListQuery) ([]models.User, int64, error) {
	return s.userRepo.ListUsers(ctx, q)
}

// GetAccount returns an account the actor may read
func (s *AccountService) GetAccount(ctx context.Context, actor authz.Actor, id uint) (*Account, error) {
	if !authz.CanAct(actor, authz.Account(id), authz.ActionRead) {
		return nil, apperror.Forbidden("You are not authorized to view this account")
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	account := &Account{User: *user}
	if user.Role == models.RoleManager {
		if account.ManagedHotels, err = s.userHotelRepo.GetUserHotels(ctx, id); err != nil {
			return nil, err
		}
	}
	return account, nil
}

// UpdateAccount applies a partial update (admin only)
func (s *AccountService) UpdateAccount(ctx context.Context, actor authz.Actor, id uint, update AccountUpdate) (*models.User, error) {
	if !authz.CanAct(actor, authz.Account(id), authz.ActionUpdate) {
		return nil, apperror.Forbidden("User role %s is not authorized to access this route", actor.Role)
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	setIf(&user.Name, update.Name)
	setIf(&user.Tel, update.Tel)
	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Role != nil {
		if !validRole(*update.Role) {
			return nil, apperror.InvalidInput("Role must be one of user, admin, manager")
		}
		user.Role = *update.Role
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "user_update", user.ID, fmt.Sprintf("Updated user %s (role: %s)", user.Email, user.Role))
	return user, nil
}

// DeleteAccount removes a user and everything they own (admin only)
func (s *AccountService) DeleteAccount(ctx context.Context, actor authz.Actor, id uint) error {
	if !authz.CanAct(actor, authz.Account(id), authz.ActionDelete) {
		return apperror.Forbidden("User role %s is not authorized to access this route", actor.Role)
	}
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actor, "user_delete", id, fmt.Sprintf("Deleted user %s", user.Email))
	return nil
}

// AssignHotel makes a manager responsible for a hotel (admin only)
func (s *AccountService) AssignHotel(ctx context.Context, actor authz.Actor, userID, hotelID uint) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("User role %s is not authorized to access this route", actor.Role)
	}
	user, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleManager {
		return apperror.InvalidInput("User %d is not a manager", userID)
	}
	if _, err := s.hotelRepo.GetHotelByID(ctx, hotelID); err != nil {
		return err
	}

	if err := s.userHotelRepo.AssignUserToHotel(ctx, userID, hotelID); err != nil {
		return err
	}

	s.record(ctx, actor, "user_hotel_assign", userID, fmt.Sprintf("Assigned user ID %d to hotel ID %d", userID, hotelID))
	return nil
}

// RemoveHotel revokes a manager's responsibility for a hotel (admin only)
func (s *AccountService) RemoveHotel(ctx context.Context, actor authz.Actor, userID, hotelID uint) error {
	if !actor.IsAdmin() {
		return apperror.Forbidden("User role %s is not authorized to access this route", actor.Role)
	}
	if err := s.userHotelRepo.RemoveUserFromHotel(ctx, userID, hotelID); err != nil {
		return err
	}

	s.record(ctx, actor, "user_hotel_remove", userID, fmt.Sprintf("Removed user ID %d from hotel ID %d", userID, hotelID))
	return nil
}

func (s *AccountService) find(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AccountService) record(ctx context.Context, actor authz.Actor, action string, id uint, details string) {
	recordAudit(ctx, s.audit, actor, action, authz.KindAccount, id, details)
}

func validRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleManager:
		return true
	}
	return false
}

// LoadActor resolves the authenticated caller from the store, so role changes and hotel
// assignments take effect without re-issuing tokens
func (s *AccountService) LoadActor(ctx context.Context, userID uint) (authz.Actor, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return authz.Actor{}, apperror.Unauthorized("Not authorized to access this route")
		}
		return authz.Actor{}, err
	}

	actor := authz.Actor{ID: user.ID, Role: user.Role}
	if user.Role == models.RoleManager {
		if actor.ManagedHotels, err = s.userHotelRepo.GetUserHotels(ctx, user.ID); err != nil {
			return authz.Actor{}, err
		}
	}
	return actor, nil
}
