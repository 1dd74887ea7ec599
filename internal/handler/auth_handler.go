package handler

import (
	"net/http"
	"time"

	"hotel-booking-api/internal/service"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type AuthHandler struct {
	authService   *service.AuthService
	refreshMaxAge time.Duration
	secureCookie  bool
}

func NewAuthHandler(authService *service.AuthService, refreshMaxAge time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		refreshMaxAge: refreshMaxAge,
		secureCookie:  secureCookie,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, response.RefreshToken)
	utils.SuccessResponse(c, response)
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	h.setRefreshCookie(c, response.RefreshToken)
	utils.SuccessResponse(c, response)
}

// Refresh issues a new access token from the refresh cookie or body
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := h.refreshToken(c)
	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Refresh token not found")
		return
	}

	accessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"token": accessToken})
}

// Logout revokes the refresh token and clears its cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken := h.refreshToken(c); refreshToken != "" {
		if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
			utils.HandleError(c, err)
			return
		}
	}

	c.SetCookie(refreshCookie, "", -1, "/", "", h.secureCookie, true)
	utils.SuccessResponse(c, gin.H{})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), actor)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, user)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookie, token, int(h.refreshMaxAge.Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) refreshToken(c *gin.Context) string {
	if token, err := c.Cookie(refreshCookie); err == nil && token != "" {
		return token
	}
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}
