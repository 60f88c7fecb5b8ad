package api

import (
	"context"
	"net/http"

	"pennywise/internal/models"
)

// AccountsService manages financial accounts.
type AccountsService struct {
	c *Client
}

// CreateAccountRequest is the payload for creating an account.
type CreateAccountRequest struct {
	Name      string             `json:"name" validate:"required"`
	Type      models.AccountType `json:"type" validate:"required,account_type"`
	Balance   float64            `json:"balance"`
	Currency  string             `json:"currency" validate:"omitempty,currency_code"`
	IsDefault bool               `json:"is_default"`
}

// UpdateAccountRequest is the payload for updating an account. Nil fields
// are left unchanged.
type UpdateAccountRequest struct {
	Name      *string             `json:"name,omitempty"`
	Type      *models.AccountType `json:"type,omitempty" validate:"omitempty,account_type"`
	Currency  *string             `json:"currency,omitempty" validate:"omitempty,currency_code"`
	IsDefault *bool               `json:"is_default,omitempty"`
}

func (s *AccountsService) List(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.c.do(ctx, http.MethodGet, "/api/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *AccountsService) Get(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := s.c.do(ctx, http.MethodGet, "/api/accounts/"+id, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountsService) Create(ctx context.Context, req CreateAccountRequest) (*models.Account, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var account models.Account
	if err := s.c.do(ctx, http.MethodPost, "/api/accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountsService) Update(ctx context.Context, id string, req UpdateAccountRequest) (*models.Account, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var account models.Account
	if err := s.c.do(ctx, http.MethodPut, "/api/accounts/"+id, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/accounts/"+id, nil, nil)
}

// Summary returns aggregate balances across all accounts.
func (s *AccountsService) Summary(ctx context.Context) (*models.AccountSummary, error) {
	var summary models.AccountSummary
	if err := s.c.do(ctx, http.MethodGet, "/api/accounts/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Types returns the account types the backend accepts.
func (s *AccountsService) Types(ctx context.Context) ([]string, error) {
	var types []string
	if err := s.c.do(ctx, http.MethodGet, "/api/accounts/types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}
