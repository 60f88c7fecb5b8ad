package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pennywise/internal/config"
	"pennywise/internal/devserver/store"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	store *store.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s *store.Store) *AuthHandler {
	return &AuthHandler{store: s}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyTwoFactorRequest represents the 2FA verification payload.
type VerifyTwoFactorRequest struct {
	Username string `json:"username" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

// RefreshRequest represents the token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents the profile update payload. Every field is
// optional; preference fields are validated against the supported sets.
type UpdateProfileRequest struct {
	FirstName         *string `json:"first_name" binding:"omitempty,max=100"`
	LastName          *string `json:"last_name" binding:"omitempty,max=100"`
	Email             *string `json:"email" binding:"omitempty,email"`
	PreferredCurrency *string `json:"preferred_currency" binding:"omitempty,currency_code"`
	DateFormat        *string `json:"date_format" binding:"omitempty,date_format"`
	PreferredLanguage *string `json:"preferred_language" binding:"omitempty,max=10"`
}

// authPayload issues the full token set for an authenticated user and stores
// the refresh token hash so the token can be rotated exactly once.
func (h *AuthHandler) authPayload(user *models.User) (gin.H, error) {
	accessToken, err := GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	refreshToken, err := GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	analyticsToken, err := GenerateAnalyticsToken(user)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := h.store.SetRefreshTokenHash(user.ID, HashToken(refreshToken)); err != nil {
		return nil, err
	}

	return gin.H{
		"access_token":    accessToken,
		"refresh_token":   refreshToken,
		"analytics_token": analyticsToken,
		"expires_in":      int64(config.Get().AccessTokenTTL.Seconds()),
		"token_type":      "Bearer",
		"user":            user,
	}, nil
}

// Register handles user registration. It returns the created user without
// authenticating the session.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.store.CreateUser(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates a user. Users with two-factor enabled get the 2FA
// challenge instead of tokens; verification happens on a separate endpoint.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if !h.store.VerifyPassword(user, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if user.TwoFactorEnabled {
		respondWithError(c, apperrors.ErrTwoFactorRequired)
		return
	}

	h.issue(c, user)
}

// VerifyTwoFactor completes a two-factor login. The dev server accepts a
// single configured demo code.
func (h *AuthHandler) VerifyTwoFactor(c *gin.Context) {
	var req VerifyTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if !user.TwoFactorEnabled || req.Token != config.Get().TwoFactorDemoCode {
		respondWithError(c, apperrors.ErrInvalidTwoFactor)
		return
	}

	h.issue(c, user)
}

// Refresh rotates the token pair. The presented refresh token must be the
// one most recently issued; rotation invalidates it.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	user, err := h.store.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != HashToken(req.RefreshToken) {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	h.issue(c, user)
}

// Logout invalidates the user's outstanding refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := h.store.SetRefreshTokenHash(userID, ""); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GetProfile returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.store.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies a partial profile update.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := make(map[string]any)
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PreferredCurrency != nil {
		updates["preferred_currency"] = *req.PreferredCurrency
	}
	if req.DateFormat != nil {
		updates["date_format"] = *req.DateFormat
	}
	if req.PreferredLanguage != nil {
		updates["preferred_language"] = *req.PreferredLanguage
	}

	user, err := h.store.UpdateProfile(userID, updates)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issue(c *gin.Context, user *models.User) {
	if err := h.store.TouchLogin(user.ID); err != nil {
		respondWithError(c, err)
		return
	}
	payload, err := h.authPayload(user)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}
