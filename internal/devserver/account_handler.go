package devserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pennywise/internal/devserver/store"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// AccountHandler handles account requests.
type AccountHandler struct {
	store *store.Store
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(s *store.Store) *AccountHandler {
	return &AccountHandler{store: s}
}

// CreateAccountRequest represents the payload for creating an account.
type CreateAccountRequest struct {
	Name      string             `json:"name" binding:"required,min=1,max=100"`
	Type      models.AccountType `json:"type" binding:"required,account_type"`
	Balance   float64            `json:"balance"`
	Currency  string             `json:"currency" binding:"omitempty,currency_code"`
	IsDefault bool               `json:"is_default"`
}

// UpdateAccountRequest represents the payload for updating an account.
type UpdateAccountRequest struct {
	Name      *string             `json:"name" binding:"omitempty,min=1,max=100"`
	Type      *models.AccountType `json:"type" binding:"omitempty,account_type"`
	Currency  *string             `json:"currency" binding:"omitempty,currency_code"`
	IsDefault *bool               `json:"is_default"`
}

// CreateAccount creates an account for the authenticated user.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	account, err := h.store.CreateAccount(userID, &models.Account{
		Name:      req.Name,
		Type:      req.Type,
		Balance:   req.Balance,
		Currency:  currency,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccounts lists the user's accounts.
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accounts, err := h.store.GetAccounts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAccount returns one account.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.store.GetAccountByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateAccount applies a partial account update.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := make(map[string]any)
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.IsDefault != nil {
		updates["is_default"] = *req.IsDefault
	}

	account, err := h.store.UpdateAccount(userID, c.Param("id"), updates)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAccount removes an account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.store.DeleteAccount(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// GetSummary aggregates the user's accounts.
func (h *AccountHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.store.GetAccountSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetTypes returns the supported account types.
func (h *AccountHandler) GetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, models.AccountTypes)
}
