package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/devserver/store"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// BudgetHandler handles budget requests.
type BudgetHandler struct {
	store *store.Store
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(s *store.Store) *BudgetHandler {
	return &BudgetHandler{store: s}
}

// CreateBudgetRequest represents the payload for creating a budget.
type CreateBudgetRequest struct {
	Name      string              `json:"name" binding:"required,min=1,max=100"`
	Amount    float64             `json:"amount" binding:"required,gt=0"`
	Category  string              `json:"category" binding:"required,max=100"`
	Period    models.BudgetPeriod `json:"period" binding:"required,budget_period"`
	StartDate time.Time           `json:"start_date"`
	EndDate   *time.Time          `json:"end_date"`
}

// UpdateBudgetRequest represents the payload for updating a budget.
type UpdateBudgetRequest struct {
	Name    *string              `json:"name" binding:"omitempty,min=1,max=100"`
	Amount  *float64             `json:"amount" binding:"omitempty,gt=0"`
	Period  *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	EndDate *time.Time           `json:"end_date"`
}

// CreateBudget creates a budget for the authenticated user.
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget := &models.Budget{
		Name:      req.Name,
		Amount:    req.Amount,
		Category:  req.Category,
		Period:    req.Period,
		StartDate: req.StartDate,
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
	}

	budget, err = h.store.CreateBudget(userID, budget)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

// GetBudgets lists the user's budgets.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.store.GetBudgets(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// GetBudget returns one budget.
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.store.GetBudgetByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// UpdateBudget applies a partial budget update.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Period != nil {
		updates["period"] = *req.Period
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}

	budget, err := h.store.UpdateBudget(userID, c.Param("id"), updates)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// DeleteBudget removes a budget.
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.store.DeleteBudget(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "budget deleted"})
}

// GetSummary aggregates the user's budgets.
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.store.GetBudgetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetPeriods returns the supported budget periods.
func (h *BudgetHandler) GetPeriods(c *gin.Context) {
	c.JSON(http.StatusOK, models.BudgetPeriods)
}
