package models

import "time"

// Frequency represents how often a recurring transaction fires.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurringTransaction is a template that materializes into a real
// transaction every time its next date comes due.
type RecurringTransaction struct {
	Base
	UserID      string          `gorm:"index;not null" json:"-"`
	AccountID   string          `gorm:"index;not null" json:"account_id"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `json:"description"`
	Category    string          `gorm:"default:'Uncategorized'" json:"category"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Frequency   Frequency       `gorm:"not null;default:'monthly'" json:"frequency"`
	NextDate    time.Time       `gorm:"not null;index" json:"next_date"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
}

// RecurringSummary aggregates a user's recurring templates.
type RecurringSummary struct {
	TotalTemplates int        `json:"total_templates"`
	Active         int        `json:"active"`
	Paused         int        `json:"paused"`
	ActiveTotal    float64    `json:"active_total"`
	NextDue        *time.Time `json:"next_due,omitempty"`
}

// Advance returns the occurrence following from. Unknown frequencies
// advance by one month.
func (r *RecurringTransaction) Advance(from time.Time) time.Time {
	switch r.Frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
