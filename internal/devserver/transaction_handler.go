package devserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pennywise/internal/devserver/store"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// TransactionHandler handles transaction requests.
type TransactionHandler struct {
	store *store.Store
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(s *store.Store) *TransactionHandler {
	return &TransactionHandler{store: s}
}

// CreateTransactionRequest represents the payload for creating a transaction.
type CreateTransactionRequest struct {
	AccountID   string                 `json:"account_id" binding:"required"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"required,max=255"`
	Category    string                 `json:"category" binding:"required,max=100"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Date        time.Time              `json:"date"`
	Tags        []string               `json:"tags"`
}

// UpdateTransactionRequest represents the payload for updating a transaction.
type UpdateTransactionRequest struct {
	Amount      *float64   `json:"amount" binding:"omitempty,gt=0"`
	Description *string    `json:"description" binding:"omitempty,max=255"`
	Category    *string    `json:"category" binding:"omitempty,max=100"`
	Date        *time.Time `json:"date"`
	Tags        []string   `json:"tags"`
}

// TransferRequest represents the payload for transferring between accounts.
type TransferRequest struct {
	FromAccountID string  `json:"from_account_id" binding:"required"`
	ToAccountID   string  `json:"to_account_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description" binding:"max=255"`
}

// CreateTransaction records a transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.store.CreateTransaction(userID, &models.Transaction{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Date:        req.Date,
		Tags:        req.Tags,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GetTransactions lists the user's transactions with optional filters.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := store.TransactionFilter{
		AccountID: c.Query("account_id"),
		Category:  c.Query("category"),
		Type:      models.TransactionType(c.Query("type")),
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a non-negative integer"))
			return
		}
		filter.Limit = limit
	}

	txs, err := h.store.GetTransactions(userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// GetTransaction returns one transaction.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.store.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// UpdateTransaction applies a partial transaction update.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
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
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}

	tx, err := h.store.UpdateTransaction(userID, c.Param("id"), updates)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// DeleteTransaction removes a transaction and reverses its balance impact.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.store.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}

// Transfer moves money between two of the user's accounts.
func (h *TransactionHandler) Transfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.store.Transfer(userID, req.FromAccountID, req.ToAccountID, req.Amount, req.Description); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "transfer completed"})
}

// GetSummary aggregates the user's transactions.
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.store.GetTransactionSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetCategories returns expense totals grouped by category.
func (h *TransactionHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.store.GetCategorySummaries(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
