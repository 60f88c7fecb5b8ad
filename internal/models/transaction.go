package models

import (
	"fmt"
	"math"
	"time"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial transaction. It references its Account
// by ID without owning it.
type Transaction struct {
	Base
	UserID      string          `gorm:"index;not null" json:"-"`
	AccountID   string          `gorm:"index;not null" json:"account_id"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `json:"description"`
	Category    string          `gorm:"default:'Uncategorized'" json:"category"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Tags        []string        `gorm:"serializer:json" json:"tags"`
}

// FormattedAmount renders the signed amount with a currency symbol,
// "+" for income and "-" for expenses.
func (t *Transaction) FormattedAmount(currencySymbol string) string {
	sign := "-"
	if t.Type == TransactionTypeIncome {
		sign = "+"
	}
	return fmt.Sprintf("%s %s%.2f", sign, currencySymbol, math.Abs(t.Amount))
}

// CategorySummary aggregates transactions of one category.
type CategorySummary struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
}

// TransactionSummary aggregates a user's transactions.
type TransactionSummary struct {
	Income     float64           `json:"income"`
	Expenses   float64           `json:"expenses"`
	Balance    float64           `json:"balance"`
	Count      int               `json:"count"`
	ByCategory []CategorySummary `json:"by_category"`
}
