package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-booking-api/internal/apperror"
	"hotel-booking-api/internal/authz"
	"hotel-booking-api/internal/models"
	"hotel-booking-api/internal/repository"
	"hotel-booking-api/pkg/utils"
)

type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *utils.TokenIssuer
	audit    AuditRecorder
}

func NewAuthService(userRepo *repository.UserRepository, tokens *utils.TokenIssuer, audit AuditRecorder) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		audit:    audit,
	}
}

// RegisterInput is the payload of a registration
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Tel      string `json:"tel" validate:"max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin manager"`
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates a user account and signs it in
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*LoginResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateModel(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		Tel:          in.Tel,
		PasswordHash: passwordHash,
		Role:         in.Role,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.record(ctx, user.ID, "user_registration", fmt.Sprintf("User %s registered", user.Email))
	return s.issue(ctx, user)
}

// Login authenticates a user by email and password and returns tokens
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperror.InvalidInput("Please provide an email and password")
	}

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}
	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	s.record(ctx, user.ID, "user_login", fmt.Sprintf("User %s logged in", user.Email))
	return s.issue(ctx, user)
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	token, err := s.userRepo.FindRefreshTokenByHash(ctx, utils.HashRefreshToken(refreshToken))
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return "", apperror.Unauthorized("Invalid or revoked refresh token")
		}
		return "", err
	}
	if time.Now().After(token.ExpiresAt) {
		return "", apperror.Unauthorized("Refresh token expired")
	}

	accessToken, err := s.tokens.GenerateAccessToken(token.User.ID, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.userRepo.RevokeRefreshTokenByHash(ctx, utils.HashRefreshToken(refreshToken))
}

// Me returns the authenticated user
func (s *AuthService) Me(ctx context.Context, actor authz.Actor) (*models.User, error) {
	return s.userRepo.FindUserByID(ctx, actor.ID)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*LoginResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := s.tokens.GenerateRefreshToken()
	stored := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(refreshToken),
		ExpiresAt: s.tokens.RefreshExpiry(),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, stored); err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (s *AuthService) record(ctx context.Context, userID uint, action, details string) {
	recordAudit(ctx, s.audit, authz.Actor{ID: userID}, action, authz.KindAccount, userID, details)
}
