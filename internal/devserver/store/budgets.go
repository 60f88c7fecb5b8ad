package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// budgetAlertThreshold is the spent percentage at which a budget alert
// notification is created.
const budgetAlertThreshold = 90

// CreateBudget creates a budget. A missing end date is derived from the
// period; the spent total is seeded from existing transactions.
func (s *Store) CreateBudget(userID string, budget *models.Budget) (*models.Budget, error) {
	budget.UserID = userID
	if budget.StartDate.IsZero() {
		budget.StartDate = time.Now()
	}
	if budget.EndDate.IsZero() {
		budget.EndDate = models.CalculateEndDate(budget.StartDate, budget.Period)
	}
	budget.Spent = s.spentInWindow(userID, budget.Category, budget.StartDate, budget.EndDate)

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetBudgets lists a user's budgets.
func (s *Store) GetBudgets(userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// GetBudgetByID returns a budget if it belongs to the user.
func (s *Store) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget applies a partial update and recomputes the spent total.
func (s *Store) UpdateBudget(userID, budgetID string, updates map[string]any) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	budget, err = s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}
	spent := s.spentInWindow(userID, budget.Category, budget.StartDate, budget.EndDate)
	if spent != budget.Spent {
		if err := s.db.Model(budget).Update("spent", spent).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Spent = spent
	}
	return budget, nil
}

// DeleteBudget removes a budget.
func (s *Store) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetSummary aggregates a user's budgets overall and per category.
func (s *Store) GetBudgetSummary(userID string) (*models.BudgetSummary, error) {
	budgets, err := s.GetBudgets(userID)
	if err != nil {
		return nil, err
	}

	summary := &models.BudgetSummary{}
	byCategory := make(map[string]*models.BudgetCategorySummary)
	order := make([]string, 0, len(budgets))
	for _, b := range budgets {
		summary.TotalBudgeted += b.Amount
		summary.TotalSpent += b.Spent

		cs, ok := byCategory[b.Category]
		if !ok {
			cs = &models.BudgetCategorySummary{Category: b.Category}
			byCategory[b.Category] = cs
			order = append(order, b.Category)
		}
		cs.Budgeted += b.Amount
		cs.Spent += b.Spent
	}

	summary.Remaining = summary.TotalBudgeted - summary.TotalSpent
	if summary.TotalBudgeted > 0 {
		summary.UtilizationPercentage = summary.TotalSpent / summary.TotalBudgeted * 100
	}
	for _, category := range order {
		cs := byCategory[category]
		cs.Remaining = cs.Budgeted - cs.Spent
		if cs.Budgeted > 0 {
			cs.UtilizationPercentage = cs.Spent / cs.Budgeted * 100
		}
		summary.ByCategory = append(summary.ByCategory, *cs)
	}
	return summary, nil
}

// recalcBudgetsForCategory refreshes the spent totals of every budget that
// matches a transaction category, raising a notification when a budget
// crosses the alert threshold. Failures are logged and swallowed: budget
// bookkeeping never fails the transaction write that triggered it.
func (s *Store) recalcBudgetsForCategory(userID, category string) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).Find(&budgets).Error; err != nil {
		logger.Get().Warnw("budget recalc failed", "category", category, "error", err.Error())
		return
	}

	for i := range budgets {
		b := &budgets[i]
		before := b.PercentSpent()
		spent := s.spentInWindow(userID, b.Category, b.StartDate, b.EndDate)
		if spent == b.Spent {
			continue
		}
		if err := s.db.Model(b).Update("spent", spent).Error; err != nil {
			logger.Get().Warnw("budget spent update failed", "budget_id", b.ID, "error", err.Error())
			continue
		}
		b.Spent = spent
		if before < budgetAlertThreshold && b.PercentSpent() >= budgetAlertThreshold {
			s.notifyBudgetAlert(userID, b)
		}
	}
}

func (s *Store) spentInWindow(userID, category string, start, end time.Time) float64 {
	var total float64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND category = ? AND type = ? AND date >= ? AND date < ?",
			userID, category, models.TransactionTypeExpense, start, end).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	if err != nil {
		logger.Get().Warnw("spent aggregation failed", "category", category, "error", err.Error())
		return 0
	}
	return total
}

func (s *Store) notifyBudgetAlert(userID string, b *models.Budget) {
	_, err := s.CreateNotification(userID, models.NotificationTypeBudget,
		"Budget alert: "+b.Name,
		fmt.Sprintf("You have spent %d%% of your %q budget.", b.PercentSpent(), b.Name))
	if err != nil {
		logger.Get().Warnw("budget alert notification failed", "budget_id", b.ID, "error", err.Error())
	}
}
