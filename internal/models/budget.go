package models

import (
	"math"
	"time"
)

// BudgetPeriod represents the period type for a budget.
type BudgetPeriod string

const (
	BudgetPeriodMonthly   BudgetPeriod = "monthly"
	BudgetPeriodQuarterly BudgetPeriod = "quarterly"
	BudgetPeriodYearly    BudgetPeriod = "yearly"
)

// BudgetPeriods lists every supported budget period.
var BudgetPeriods = []BudgetPeriod{
	BudgetPeriodMonthly,
	BudgetPeriodQuarterly,
	BudgetPeriodYearly,
}

// Budget represents a spending budget for a category over a period.
type Budget struct {
	Base
	UserID    string       `gorm:"index;not null" json:"-"`
	Name      string       `gorm:"not null" json:"name"`
	Amount    float64      `gorm:"not null" json:"amount"`
	Spent     float64      `gorm:"not null;default:0" json:"spent"`
	Category  string       `gorm:"not null" json:"category"`
	Period    BudgetPeriod `gorm:"not null;default:'monthly'" json:"period"`
	StartDate time.Time    `gorm:"not null" json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
}

// Remaining returns the unspent part of the budget.
func (b *Budget) Remaining() float64 {
	return b.Amount - b.Spent
}

// PercentSpent returns the rounded percentage of the budget already spent,
// clamped to [0, 100]. A zero-amount budget reports 0.
func (b *Budget) PercentSpent() int {
	if b.Amount == 0 {
		return 0
	}
	pct := int(math.Round(b.Spent / b.Amount * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// CalculateEndDate returns the end of a budget window starting at start:
// one month for monthly, three months for quarterly, one year for yearly.
// Unknown periods default to monthly.
func CalculateEndDate(start time.Time, period BudgetPeriod) time.Time {
	switch period {
	case BudgetPeriodQuarterly:
		return start.AddDate(0, 3, 0)
	case BudgetPeriodYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// BudgetCategorySummary aggregates budgets of one category.
type BudgetCategorySummary struct {
	Category              string  `json:"category"`
	Budgeted              float64 `json:"budgeted"`
	Spent                 float64 `json:"spent"`
	Remaining             float64 `json:"remaining"`
	UtilizationPercentage float64 `json:"utilization_percentage"`
}

// BudgetSummary aggregates a user's budgets.
type BudgetSummary struct {
	TotalBudgeted         float64                 `json:"total_budgeted"`
	TotalSpent            float64                 `json:"total_spent"`
	Remaining             float64                 `json:"remaining"`
	UtilizationPercentage float64                 `json:"utilization_percentage"`
	ByCategory            []BudgetCategorySummary `json:"by_category"`
}
