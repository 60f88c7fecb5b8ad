package api

import (
	"context"
	"net/http"
	"time"

	"pennywise/internal/models"
)

// RecurringService manages recurring transaction templates.
type RecurringService struct {
	c *Client
}

// CreateRecurringRequest is the payload for creating a recurring template.
type CreateRecurringRequest struct {
	AccountID   string                 `json:"account_id" validate:"required"`
	Amount      float64                `json:"amount" validate:"required,gt=0"`
	Description string                 `json:"description" validate:"required"`
	Category    string                 `json:"category" validate:"required"`
	Type        models.TransactionType `json:"type" validate:"required,transaction_type"`
	Frequency   models.Frequency       `json:"frequency" validate:"required,frequency"`
	NextDate    time.Time              `json:"next_date"`
}

// UpdateRecurringRequest is the payload for editing a recurring template.
// Nil fields are left unchanged.
type UpdateRecurringRequest struct {
	Amount      *float64          `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description *string           `json:"description,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Frequency   *models.Frequency `json:"frequency,omitempty" validate:"omitempty,frequency"`
	NextDate    *time.Time        `json:"next_date,omitempty"`
	IsActive    *bool             `json:"is_active,omitempty"`
}

func (s *RecurringService) List(ctx context.Context) ([]models.RecurringTransaction, error) {
	var recurring []models.RecurringTransaction
	if err := s.c.do(ctx, http.MethodGet, "/api/recurring-transactions", nil, &recurring); err != nil {
		return nil, err
	}
	return recurring, nil
}

func (s *RecurringService) Get(ctx context.Context, id string) (*models.RecurringTransaction, error) {
	var rec models.RecurringTransaction
	if err := s.c.do(ctx, http.MethodGet, "/api/recurring-transactions/"+id, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecurringService) Create(ctx context.Context, req CreateRecurringRequest) (*models.RecurringTransaction, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var rec models.RecurringTransaction
	if err := s.c.do(ctx, http.MethodPost, "/api/recurring-transactions", req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecurringService) Update(ctx context.Context, id string, req UpdateRecurringRequest) (*models.RecurringTransaction, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var rec models.RecurringTransaction
	if err := s.c.do(ctx, http.MethodPut, "/api/recurring-transactions/"+id, req, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecurringService) Summary(ctx context.Context) (*models.RecurringSummary, error) {
	var summary models.RecurringSummary
	if err := s.c.do(ctx, http.MethodGet, "/api/recurring-transactions/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *RecurringService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/recurring-transactions/"+id, nil, nil)
}
