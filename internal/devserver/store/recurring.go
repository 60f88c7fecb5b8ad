package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// CreateRecurring creates a recurring transaction template.
func (s *Store) CreateRecurring(userID string, rec *models.RecurringTransaction) (*models.RecurringTransaction, error) {
	if _, err := s.GetAccountByID(userID, rec.AccountID); err != nil {
		return nil, err
	}
	rec.UserID = userID
	rec.IsActive = true
	if rec.NextDate.IsZero() {
		rec.NextDate = rec.Advance(time.Now())
	}
	if err := s.db.Create(rec).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rec, nil
}

// GetRecurring lists a user's recurring templates.
func (s *Store) GetRecurring(userID string) ([]models.RecurringTransaction, error) {
	var recs []models.RecurringTransaction
	if err := s.db.Where("user_id = ?", userID).
		Order("next_date ASC").Find(&recs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recs, nil
}

// GetRecurringByID returns a recurring template if it belongs to the user.
func (s *Store) GetRecurringByID(userID, recID string) (*models.RecurringTransaction, error) {
	var rec models.RecurringTransaction
	if err := s.db.Where("id = ? AND user_id = ?", recID, userID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rec, nil
}

// UpdateRecurring applies a partial update.
func (s *Store) UpdateRecurring(userID, recID string, updates map[string]any) (*models.RecurringTransaction, error) {
	rec, err := s.GetRecurringByID(userID, recID)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(rec).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return s.GetRecurringByID(userID, recID)
}

// DeleteRecurring removes a recurring template.
func (s *Store) DeleteRecurring(userID, recID string) error {
	rec, err := s.GetRecurringByID(userID, recID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(rec).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRecurringSummary aggregates a user's recurring templates.
func (s *Store) GetRecurringSummary(userID string) (*models.RecurringSummary, error) {
	recs, err := s.GetRecurring(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.RecurringSummary{TotalTemplates: len(recs)}
	for i := range recs {
		r := &recs[i]
		if !r.IsActive {
			summary.Paused++
			continue
		}
		summary.Active++
		summary.ActiveTotal += r.Amount
		if summary.NextDue == nil || r.NextDate.Before(*summary.NextDue) {
			next := r.NextDate
			summary.NextDue = &next
		}
	}
	return summary, nil
}

// MaterializeDue turns every active recurring template whose next date has
// passed into a real transaction, advancing the template's next date past
// now. Returns the number of transactions created.
func (s *Store) MaterializeDue(now time.Time) (int, error) {
	var due []models.RecurringTransaction
	if err := s.db.Where("is_active = ? AND next_date <= ?", true, now).Find(&due).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	created := 0
	for i := range due {
		rec := &due[i]

		// Catch up on every missed occurrence, not just the latest one.
		next := rec.NextDate
		for !next.After(now) {
			t := &models.Transaction{
				AccountID:   rec.AccountID,
				Amount:      rec.Amount,
				Description: rec.Description,
				Category:    rec.Category,
				Type:        rec.Type,
				Date:        next,
			}
			if _, err := s.CreateTransaction(rec.UserID, t); err != nil {
				logger.Get().Warnw("recurring materialization failed",
					"recurring_id", rec.ID, "error", err.Error())
				break
			}
			created++
			next = rec.Advance(next)
		}

		if err := s.db.Model(rec).Update("next_date", next).Error; err != nil {
			return created, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		_, err := s.CreateNotification(rec.UserID, models.NotificationTypeRecurring,
			"Recurring transaction posted",
			rec.Description+" was posted automatically.")
		if err != nil {
			logger.Get().Warnw("recurring notification failed", "recurring_id", rec.ID, "error", err.Error())
		}
	}
	return created, nil
}
