package api

import (
	"context"
	"net/http"
	"time"

	"pennywise/internal/models"
)

// GoalsService manages savings goals.
type GoalsService struct {
	c *Client
}

// CreateGoalRequest is the payload for creating a goal.
type CreateGoalRequest struct {
	Name          string     `json:"name" validate:"required"`
	TargetAmount  float64    `json:"target_amount" validate:"required,gt=0"`
	CurrentAmount float64    `json:"current_amount" validate:"gte=0"`
	Category      string     `json:"category,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Color         string     `json:"color,omitempty" validate:"omitempty,hex_color"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	Priority      int        `json:"priority,omitempty"`
}

// UpdateGoalRequest is the payload for editing a goal. Nil fields are left
// unchanged.
type UpdateGoalRequest struct {
	Name         *string    `json:"name,omitempty"`
	TargetAmount *float64   `json:"target_amount,omitempty" validate:"omitempty,gt=0"`
	Category     *string    `json:"category,omitempty"`
	Icon         *string    `json:"icon,omitempty"`
	Color        *string    `json:"color,omitempty" validate:"omitempty,hex_color"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
}

type contributeRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (s *GoalsService) List(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.c.do(ctx, http.MethodGet, "/api/goals", nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *GoalsService) Get(ctx context.Context, id string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.c.do(ctx, http.MethodGet, "/api/goals/"+id, nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalsService) Create(ctx context.Context, req CreateGoalRequest) (*models.Goal, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var goal models.Goal
	if err := s.c.do(ctx, http.MethodPost, "/api/goals", req, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalsService) Update(ctx context.Context, id string, req UpdateGoalRequest) (*models.Goal, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var goal models.Goal
	if err := s.c.do(ctx, http.MethodPut, "/api/goals/"+id, req, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *GoalsService) Summary(ctx context.Context) (*models.GoalSummary, error) {
	var summary models.GoalSummary
	if err := s.c.do(ctx, http.MethodGet, "/api/goals/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *GoalsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/goals/"+id, nil, nil)
}

// Contribute adds an amount toward a goal's current total.
func (s *GoalsService) Contribute(ctx context.Context, id string, amount float64) (*models.Goal, error) {
	req := contributeRequest{Amount: amount}
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var goal models.Goal
	if err := s.c.do(ctx, http.MethodPost, "/api/goals/"+id+"/contribute", req, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}
