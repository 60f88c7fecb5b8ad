package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"pennywise/internal/models"
)

// TransactionsService manages income and expense transactions.
type TransactionsService struct {
	c *Client
}

// CreateTransactionRequest is the payload for recording a transaction.
type CreateTransactionRequest struct {
	AccountID   string                 `json:"account_id" validate:"required"`
	Amount      float64                `json:"amount" validate:"required,gt=0"`
	Description string                 `json:"description" validate:"required"`
	Category    string                 `json:"category" validate:"required"`
	Type        models.TransactionType `json:"type" validate:"required,transaction_type"`
	Date        time.Time              `json:"date"`
	Tags        []string               `json:"tags,omitempty"`
}

// UpdateTransactionRequest is the payload for editing a transaction. Nil
// fields are left unchanged.
type UpdateTransactionRequest struct {
	Amount      *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// TransferRequest moves money between two accounts.
type TransferRequest struct {
	FromAccountID string  `json:"from_account_id" validate:"required"`
	ToAccountID   string  `json:"to_account_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Description   string  `json:"description,omitempty"`
}

// ListTransactionsOptions filters transaction listings. Zero values are
// omitted from the query.
type ListTransactionsOptions struct {
	AccountID string
	Category  string
	Type      models.TransactionType
	Limit     int
}

func (s *TransactionsService) List(ctx context.Context, opts ListTransactionsOptions) ([]models.Transaction, error) {
	limit := ""
	if opts.Limit > 0 {
		limit = strconv.Itoa(opts.Limit)
	}
	path := "/api/transactions" + query(map[string]string{
		"account_id": opts.AccountID,
		"category":   opts.Category,
		"type":       string(opts.Type),
		"limit":      limit,
	})
	var txs []models.Transaction
	if err := s.c.do(ctx, http.MethodGet, path, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *TransactionsService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.c.do(ctx, http.MethodGet, "/api/transactions/"+id, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionsService) Create(ctx context.Context, req CreateTransactionRequest) (*models.Transaction, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var tx models.Transaction
	if err := s.c.do(ctx, http.MethodPost, "/api/transactions", req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionsService) Update(ctx context.Context, id string, req UpdateTransactionRequest) (*models.Transaction, error) {
	if err := s.c.validateReq(req); err != nil {
		return nil, err
	}
	var tx models.Transaction
	if err := s.c.do(ctx, http.MethodPut, "/api/transactions/"+id, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *TransactionsService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/transactions/"+id, nil, nil)
}

// Transfer creates the paired expense and income transactions for a
// between-accounts transfer.
func (s *TransactionsService) Transfer(ctx context.Context, req TransferRequest) error {
	if err := s.c.validateReq(req); err != nil {
		return err
	}
	return s.c.do(ctx, http.MethodPost, "/api/transactions/transfer", req, nil)
}

// Summary returns income and expense totals over recent transactions.
func (s *TransactionsService) Summary(ctx context.Context) (*models.TransactionSummary, error) {
	var summary models.TransactionSummary
	if err := s.c.do(ctx, http.MethodGet, "/api/transactions/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Categories returns spending totals grouped by category.
func (s *TransactionsService) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	var categories []models.CategorySummary
	if err := s.c.do(ctx, http.MethodGet, "/api/transactions/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
