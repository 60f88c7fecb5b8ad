package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/devserver/store"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// RecurringHandler handles recurring transaction template requests.
type RecurringHandler struct {
	store *store.Store
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(s *store.Store) *RecurringHandler {
	return &RecurringHandler{store: s}
}

// CreateRecurringRequest represents the payload for creating a template.
type CreateRecurringRequest struct {
	AccountID   string                 `json:"account_id" binding:"required"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"required,max=255"`
	Category    string                 `json:"category" binding:"required,max=100"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Frequency   models.Frequency       `json:"frequency" binding:"required,frequency"`
	NextDate    time.Time              `json:"next_date"`
}

// UpdateRecurringRequest represents the payload for updating a template.
type UpdateRecurringRequest struct {
	Amount      *float64          `json:"amount" binding:"omitempty,gt=0"`
	Description *string           `json:"description" binding:"omitempty,max=255"`
	Category    *string           `json:"category" binding:"omitempty,max=100"`
	Frequency   *models.Frequency `json:"frequency" binding:"omitempty,frequency"`
	NextDate    *time.Time        `json:"next_date"`
	IsActive    *bool             `json:"is_active"`
}

// CreateRecurring creates a recurring template.
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rec, err := h.store.CreateRecurring(userID, &models.RecurringTransaction{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Frequency:   req.Frequency,
		NextDate:    req.NextDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetRecurring lists the user's recurring templates.
func (h *RecurringHandler) GetRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recs, err := h.store.GetRecurring(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// GetRecurringByID returns one recurring template.
func (h *RecurringHandler) GetRecurringByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rec, err := h.store.GetRecurringByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateRecurring applies a partial template update.
func (h *RecurringHandler) UpdateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := make(map[string]any)
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}
	if req.NextDate != nil {
		updates["next_date"] = *req.NextDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	rec, err := h.store.UpdateRecurring(userID, c.Param("id"), updates)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetSummary aggregates the user's recurring templates.
func (h *RecurringHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.store.GetRecurringSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteRecurring removes a recurring template.
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.store.DeleteRecurring(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recurring transaction deleted"})
}
