package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/devserver/store"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	store *store.Store
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(s *store.Store) *GoalHandler {
	return &GoalHandler{store: s}
}

// CreateGoalRequest represents the payload for creating a goal.
type CreateGoalRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=100"`
	TargetAmount  float64    `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount float64    `json:"current_amount" binding:"gte=0"`
	Category      string     `json:"category" binding:"max=100"`
	Icon          string     `json:"icon" binding:"max=50"`
	Color         string     `json:"color" binding:"omitempty,hex_color"`
	TargetDate    *time.Time `json:"target_date"`
	Priority      int        `json:"priority"`
}

// UpdateGoalRequest represents the payload for updating a goal.
type UpdateGoalRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=1,max=100"`
	TargetAmount *float64   `json:"target_amount" binding:"omitempty,gt=0"`
	Category     *string    `json:"category" binding:"omitempty,max=100"`
	Icon         *string    `json:"icon" binding:"omitempty,max=50"`
	Color        *string    `json:"color" binding:"omitempty,hex_color"`
	TargetDate   *time.Time `json:"target_date"`
	Priority     *int       `json:"priority"`
}

// ContributeRequest represents the payload for contributing toward a goal.
type ContributeRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateGoal creates a goal for the authenticated user.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.store.CreateGoal(userID, &models.Goal{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Category:      req.Category,
		Icon:          req.Icon,
		Color:         req.Color,
		TargetDate:    req.TargetDate,
		Priority:      req.Priority,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// GetGoals lists the user's goals.
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.store.GetGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// GetGoal returns one goal.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.store.GetGoalByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// UpdateGoal applies a partial goal update.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.TargetAmount != nil {
		updates["target_amount"] = *req.TargetAmount
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.TargetDate != nil {
		updates["target_date"] = req.TargetDate
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}

	goal, err := h.store.UpdateGoal(userID, c.Param("id"), updates)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// GetSummary aggregates the user's goals.
func (h *GoalHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.store.GetGoalSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteGoal removes a goal.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.store.DeleteGoal(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goal deleted"})
}

// Contribute adds an amount to a goal's current total.
func (h *GoalHandler) Contribute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.store.Contribute(userID, c.Param("id"), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
