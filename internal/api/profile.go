package api

import (
	"context"
	"net/http"

	"pennywise/internal/models"
)

// ProfileService manages the authenticated user's profile. The typed methods
// cover identity fields; the document methods expose the raw profile as a
// camelCase key tree, which is how the preferences store consumes it.
type ProfileService struct {
	c *Client
}

// UpdateProfileRequest is the payload for editing profile fields. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	PreferredCurrency *string `json:"preferred_currency,omitempty" validate:"omitempty,currency_code"`
	DateFormat        *string `json:"date_format,omitempty" validate:"omitempty,date_format"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
}

func (s *ProfileService) Get(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.c.do(ctx, http.MethodGet, "/api/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *ProfileService) Update(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.c.do(ctx, http.MethodPut, "/api/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Fetch returns the profile as a document with camelCase keys.
func (s *ProfileService) Fetch(ctx context.Context) (map[string]any, error) {
	return s.c.getDynamic(ctx, "/api/profile")
}

// Save writes a camelCase profile document back, converting keys to the
// wire's snake_case on the way out.
func (s *ProfileService) Save(ctx context.Context, doc map[string]any) error {
	return s.c.putDynamic(ctx, "/api/profile", doc)
}
