package store

import (
	"sort"
	"time"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// AnalyticsOverview is the headline aggregate the analytics backend serves.
type AnalyticsOverview struct {
	NetWorth       float64                  `json:"net_worth"`
	TotalAccounts  int                      `json:"total_accounts"`
	MonthIncome    float64                  `json:"month_income"`
	MonthExpenses  float64                  `json:"month_expenses"`
	MonthNet       float64                  `json:"month_net"`
	TopCategories  []models.CategorySummary `json:"top_categories"`
	BudgetsOnTrack int                      `json:"budgets_on_track"`
	BudgetsOver    int                      `json:"budgets_over"`
}

// AnalyticsInsights carries derived observations about spending behavior.
type AnalyticsInsights struct {
	SavingsRate     float64             `json:"savings_rate"`
	LargestExpense  *models.Transaction `json:"largest_expense,omitempty"`
	DailyAverage    float64             `json:"daily_average"`
	MaxDailyAmount  float64             `json:"max_daily_amount"`
	ActiveDays      int                 `json:"active_days"`
	GoalsInProgress int                 `json:"goals_in_progress"`
	GoalsReached    int                 `json:"goals_reached"`
}

// GetAnalyticsOverview aggregates the current month's activity for a user.
func (s *Store) GetAnalyticsOverview(userID string, now time.Time) (*AnalyticsOverview, error) {
	accounts, err := s.GetAccountSummary(userID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var txs []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ?", userID, monthStart).
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	overview := &AnalyticsOverview{
		NetWorth:      accounts.NetWorth,
		TotalAccounts: accounts.TotalAccounts,
		TopCategories: []models.CategorySummary{},
	}
	byCategory := map[string]*models.CategorySummary{}
	for i := range txs {
		t := &txs[i]
		if t.Type == models.TransactionTypeIncome {
			overview.MonthIncome += t.Amount
			continue
		}
		overview.MonthExpenses += t.Amount
		cs, ok := byCategory[t.Category]
		if !ok {
			cs = &models.CategorySummary{Category: t.Category}
			byCategory[t.Category] = cs
		}
		cs.Amount += t.Amount
		cs.Count++
	}
	overview.MonthNet = overview.MonthIncome - overview.MonthExpenses

	for _, cs := range byCategory {
		overview.TopCategories = append(overview.TopCategories, *cs)
	}
	sort.Slice(overview.TopCategories, func(i, j int) bool {
		return overview.TopCategories[i].Amount > overview.TopCategories[j].Amount
	})
	if len(overview.TopCategories) > 5 {
		overview.TopCategories = overview.TopCategories[:5]
	}

	budgets, err := s.GetBudgets(userID)
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		if budgets[i].Spent > budgets[i].Amount {
			overview.BudgetsOver++
		} else {
			overview.BudgetsOnTrack++
		}
	}
	return overview, nil
}

// GetAnalyticsInsights derives spending observations over the current month.
func (s *Store) GetAnalyticsInsights(userID string, now time.Time) (*AnalyticsInsights, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var txs []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ?", userID, monthStart).
		Order("date ASC").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	insights := &AnalyticsInsights{}
	var income, expenses float64
	daily := map[string]float64{}
	for i := range txs {
		t := &txs[i]
		if t.Type == models.TransactionTypeIncome {
			income += t.Amount
			continue
		}
		expenses += t.Amount
		day := t.Date.Format("2006-01-02")
		daily[day] += t.Amount
		if insights.LargestExpense == nil || t.Amount > insights.LargestExpense.Amount {
			insights.LargestExpense = t
		}
	}

	if income > 0 {
		insights.SavingsRate = (income - expenses) / income * 100
	}
	insights.ActiveDays = len(daily)
	for _, amount := range daily {
		if amount > insights.MaxDailyAmount {
			insights.MaxDailyAmount = amount
		}
	}
	if insights.ActiveDays > 0 {
		insights.DailyAverage = expenses / float64(insights.ActiveDays)
	}

	goals, err := s.GetGoals(userID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].Completed() {
			insights.GoalsReached++
		} else {
			insights.GoalsInProgress++
		}
	}
	return insights, nil
}
