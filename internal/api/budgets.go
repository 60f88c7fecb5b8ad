package api

import (
	"context"
	"net/http"
	"time"

	"pennywise/internal/models"
)

// BudgetsService manages spending budgets.
type BudgetsService struct {
	c *Client
}

// CreateBudgetRequest is the payload for creating a budget. When EndDate is
// nil the backend derives it from the period.
type CreateBudgetRequest struct {
	Name      string              `json:"name" validate:"required"`
	Amount    float64             `json:"amount" validate:"required,gt=0"`
	Category  string              `json:"category" validate:"required"`
	Period    models.BudgetPeriod `json:"period" validate:"required,budget_period"`
	StartDate time.Time           `json:"start_date"`
	EndDate   *time.Time          `json:"end_date,omitempty"`
}

// UpdateBudgetRequest is the payload for editing a budget. Nil fields are
// left unchanged.
type UpdateBudgetRequest struct {
	Name    *string              `json:"name,omitempty"`
	Amount  *float64             `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Period  *models.BudgetPeriod `json:"period,omitempty" validate:"omitempty,budget_period"`
	EndDate *time.Time           `json:"end_date,omitempty"`
}

func (s *BudgetsService) List(ctx context.Context) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.c.do(ctx, http.MethodGet, "/api/budgets", nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (s *BudgetsService) Get(ctx context.Context, id string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.c.do(ctx, http.MethodGet, "/api/budgets/"+id, nil, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (s *BudgetsService) Create(ctx context.Context, req CreateBudgetRequest) (*models.Budget, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var budget models.Budget
	if err := s.c.do(ctx, http.MethodPost, "/api/budgets", req, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (s *BudgetsService) Update(ctx context.Context, id string, req UpdateBudgetRequest) (*models.Budget, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var budget models.Budget
	if err := s.c.do(ctx, http.MethodPut, "/api/budgets/"+id, req, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (s *BudgetsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/budgets/"+id, nil, nil)
}

// Summary returns budget totals grouped by category.
func (s *BudgetsService) Summary(ctx context.Context) (*models.BudgetSummary, error) {
	var summary models.BudgetSummary
	if err := s.c.do(ctx, http.MethodGet, "/api/budgets/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Periods returns the budget periods the backend accepts.
func (s *BudgetsService) Periods(ctx context.Context) ([]string, error) {
	var periods []string
	if err := s.c.do(ctx, http.MethodGet, "/api/budgets/periods", nil, &periods); err != nil {
		return nil, err
	}
	return periods, nil
}
