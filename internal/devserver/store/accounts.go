package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// CreateAccount creates an account for a user. The first account a user
// creates becomes the default automatically.
func (s *Store) CreateAccount(userID string, account *models.Account) (*models.Account, error) {
	account.UserID = userID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			account.IsDefault = true
		} else if account.IsDefault {
			if err := clearDefault(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(account).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetAccounts lists a user's accounts, default first.
func (s *Store) GetAccounts(userID string) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID returns an account if it belongs to the user.
func (s *Store) GetAccountByID(userID, accountID string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount applies a partial update, keeping the single-default
// invariant.
func (s *Store) UpdateAccount(userID, accountID string, updates map[string]any) (*models.Account, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if makeDefault, ok := updates["is_default"].(bool); ok && makeDefault {
			if err := clearDefault(tx, userID); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(account).Updates(updates).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetAccountByID(userID, accountID)
}

// DeleteAccount removes an account. Accounts with transactions cannot be
// deleted.
func (s *Store) DeleteAccount(userID, accountID string) error {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).
		Where("account_id = ?", accountID).Count(&txCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if txCount > 0 {
		return apperrors.ErrAccountInUse
	}

	if err := s.db.Delete(account).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetAccountSummary aggregates a user's accounts into assets, liabilities
// and net worth. Credit accounts count as liabilities.
func (s *Store) GetAccountSummary(userID string) (*models.AccountSummary, error) {
	accounts, err := s.GetAccounts(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.AccountSummary{TotalAccounts: len(accounts)}
	for _, a := range accounts {
		if a.Type == models.AccountTypeCredit {
			summary.TotalLiabilities += a.Balance
		} else {
			summary.TotalAssets += a.Balance
		}
	}
	summary.NetWorth = summary.TotalAssets - summary.TotalLiabilities
	return summary, nil
}

// AdjustBalance applies a signed delta to an account's balance.
func (s *Store) AdjustBalance(tx *gorm.DB, accountID string, delta float64) error {
	return tx.Model(&models.Account{}).Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

func clearDefault(tx *gorm.DB, userID string) error {
	return tx.Model(&models.Account{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
