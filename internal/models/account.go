package models

import "fmt"

// AccountType represents the type of account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCash       AccountType = "cash"
	AccountTypeOther      AccountType = "other"
)

// AccountTypes lists every supported account type, in display order.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeCredit,
	AccountTypeInvestment,
	AccountTypeCash,
	AccountTypeOther,
}

// Account represents a financial account. At most one account per user has
// IsDefault set; the backend enforces this on every write.
type Account struct {
	Base
	UserID    string      `gorm:"index;not null" json:"-"`
	Name      string      `gorm:"not null" json:"name"`
	Type      AccountType `gorm:"not null;default:'checking'" json:"type"`
	Balance   float64     `gorm:"not null;default:0" json:"balance"`
	Currency  string      `gorm:"not null;default:'USD'" json:"currency"`
	IsDefault bool        `gorm:"default:false" json:"is_default"`
}

// FormattedBalance renders the balance with a currency symbol.
func (a *Account) FormattedBalance(currencySymbol string) string {
	return fmt.Sprintf("%s%.2f", currencySymbol, a.Balance)
}

// AccountSummary aggregates a user's accounts.
type AccountSummary struct {
	TotalAccounts    int     `json:"total_accounts"`
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	NetWorth         float64 `json:"net_worth"`
}
