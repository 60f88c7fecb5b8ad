package store

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// signedDelta returns the balance impact of a transaction.
func signedDelta(txType models.TransactionType, amount float64) float64 {
	if txType == models.TransactionTypeExpense {
		return -amount
	}
	return amount
}

// CreateTransaction records a transaction, adjusts the account balance, and
// rolls the spent total into any matching budgets.
func (s *Store) CreateTransaction(userID string, t *models.Transaction) (*models.Transaction, error) {
	if _, err := s.GetAccountByID(userID, t.AccountID); err != nil {
		return nil, err
	}

	t.UserID = userID
	if t.Date.IsZero() {
		t.Date = time.Now()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return s.AdjustBalance(tx, t.AccountID, signedDelta(t.Type, t.Amount))
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if t.Type == models.TransactionTypeExpense {
		s.recalcBudgetsForCategory(userID, t.Category)
	}
	return t, nil
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	AccountID string
	Category  string
	Type      models.TransactionType
	Limit     int
}

// GetTransactions lists a user's transactions, newest first.
func (s *Store) GetTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", userID).Order("date DESC, created_at DESC")
	if filter.AccountID != "" {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var txs []models.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// GetTransactionByID returns a transaction if it belongs to the user.
func (s *Store) GetTransactionByID(userID, txID string) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", txID, userID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &t, nil
}

// UpdateTransaction edits a transaction, rebalancing the account when the
// amount changes.
func (s *Store) UpdateTransaction(userID, txID string, updates map[string]any) (*models.Transaction, error) {
	t, err := s.GetTransactionByID(userID, txID)
	if err != nil {
		return nil, err
	}

	oldCategory := t.Category
	oldDelta := signedDelta(t.Type, t.Amount)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(t).Updates(updates).Error; err != nil {
				return err
			}
		}
		var fresh models.Transaction
		if err := tx.Where("id = ?", txID).First(&fresh).Error; err != nil {
			return err
		}
		newDelta := signedDelta(fresh.Type, fresh.Amount)
		if newDelta != oldDelta {
			if err := s.AdjustBalance(tx, fresh.AccountID, newDelta-oldDelta); err != nil {
				return err
			}
		}
		*t = fresh
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.recalcBudgetsForCategory(userID, oldCategory)
	if t.Category != oldCategory {
		s.recalcBudgetsForCategory(userID, t.Category)
	}
	return t, nil
}

// DeleteTransaction removes a transaction and reverses its balance impact.
func (s *Store) DeleteTransaction(userID, txID string) error {
	t, err := s.GetTransactionByID(userID, txID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(t).Error; err != nil {
			return err
		}
		return s.AdjustBalance(tx, t.AccountID, -signedDelta(t.Type, t.Amount))
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.recalcBudgetsForCategory(userID, t.Category)
	return nil
}

// Transfer moves money between two accounts as a paired expense and income.
func (s *Store) Transfer(userID, fromID, toID string, amount float64, description string) error {
	if fromID == toID {
		return apperrors.ErrSameAccountTransfer
	}
	if _, err := s.GetAccountByID(userID, fromID); err != nil {
		return err
	}
	if _, err := s.GetAccountByID(userID, toID); err != nil {
		return err
	}
	if description == "" {
		description = "Transfer"
	}

	now := time.Now()
	out := &models.Transaction{
		UserID:      userID,
		AccountID:   fromID,
		Amount:      amount,
		Description: description,
		Category:    "Transfer",
		Type:        models.TransactionTypeExpense,
		Date:        now,
	}
	in := &models.Transaction{
		UserID:      userID,
		AccountID:   toID,
		Amount:      amount,
		Description: description,
		Category:    "Transfer",
		Type:        models.TransactionTypeIncome,
		Date:        now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(out).Error; err != nil {
			return err
		}
		if err := tx.Create(in).Error; err != nil {
			return err
		}
		if err := s.AdjustBalance(tx, fromID, -amount); err != nil {
			return err
		}
		return s.AdjustBalance(tx, toID, amount)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTransactionSummary aggregates a user's transactions into income,
// expense and per-category totals.
func (s *Store) GetTransactionSummary(userID string) (*models.TransactionSummary, error) {
	txs, err := s.GetTransactions(userID, TransactionFilter{})
	if err != nil {
		return nil, err
	}

	summary := &models.TransactionSummary{Count: len(txs)}
	byCategory := make(map[string]*models.CategorySummary)
	for _, t := range txs {
		if t.Type == models.TransactionTypeIncome {
			summary.Income += t.Amount
			continue
		}
		summary.Expenses += t.Amount
		cs, ok := byCategory[t.Category]
		if !ok {
			cs = &models.CategorySummary{Category: t.Category}
			byCategory[t.Category] = cs
		}
		cs.Amount += t.Amount
		cs.Count++
	}
	summary.Balance = summary.Income - summary.Expenses

	for _, cs := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *cs)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Amount > summary.ByCategory[j].Amount
	})
	return summary, nil
}

// GetCategorySummaries returns expense totals grouped by category, largest
// first.
func (s *Store) GetCategorySummaries(userID string) ([]models.CategorySummary, error) {
	summary, err := s.GetTransactionSummary(userID)
	if err != nil {
		return nil, err
	}
	return summary.ByCategory, nil
}
