package store

import (
	"time"

	"pennywise/internal/logger"
	"pennywise/internal/models"
)

// Seed populates the database with demo data so the server is usable right
// after startup. It is a no-op when the demo user already exists.
//
// Two users are seeded: "demo" with a plain password login, and "demo2fa"
// with two-factor enabled to exercise the verification flow.
func (s *Store) Seed() error {
	if _, err := s.GetUserByUsername("demo"); err == nil {
		return nil
	}

	demo, err := s.CreateUser("demo", "demo@pennywise.local", "password123", "Demo", "User")
	if err != nil {
		return err
	}

	twofa, err := s.CreateUser("demo2fa", "demo2fa@pennywise.local", "password123", "Two", "Factor")
	if err != nil {
		return err
	}
	if err := s.db.Model(twofa).Update("two_factor_enabled", true).Error; err != nil {
		return err
	}

	checking, err := s.CreateAccount(demo.ID, &models.Account{
		Name: "Everyday Checking", Type: models.AccountTypeChecking, Balance: 2450.75,
	})
	if err != nil {
		return err
	}
	if _, err := s.CreateAccount(demo.ID, &models.Account{
		Name: "Rainy Day Savings", Type: models.AccountTypeSavings, Balance: 8000,
	}); err != nil {
		return err
	}

	seedTxs := []models.Transaction{
		{AccountID: checking.ID, Amount: 3200, Description: "Salary", Category: "Income", Type: models.TransactionTypeIncome},
		{AccountID: checking.ID, Amount: 54.20, Description: "Groceries", Category: "Food", Type: models.TransactionTypeExpense},
		{AccountID: checking.ID, Amount: 12.99, Description: "Streaming subscription", Category: "Entertainment", Type: models.TransactionTypeExpense},
	}
	for i := range seedTxs {
		tx := seedTxs[i]
		tx.Date = time.Now().AddDate(0, 0, -i)
		if _, err := s.CreateTransaction(demo.ID, &tx); err != nil {
			return err
		}
	}

	if _, err := s.CreateBudget(demo.ID, &models.Budget{
		Name: "Food", Amount: 400, Category: "Food", Period: models.BudgetPeriodMonthly,
	}); err != nil {
		return err
	}

	if _, err := s.CreateGoal(demo.ID, &models.Goal{
		Name: "Vacation fund", TargetAmount: 1500, CurrentAmount: 350,
		Category: "Travel", Icon: "beach", Color: "#2E86AB", Priority: 1,
	}); err != nil {
		return err
	}

	if _, err := s.CreateRecurring(demo.ID, &models.RecurringTransaction{
		AccountID: checking.ID, Amount: 12.99, Description: "Streaming subscription",
		Category: "Entertainment", Type: models.TransactionTypeExpense,
		Frequency: models.FrequencyMonthly, NextDate: time.Now().AddDate(0, 1, 0),
	}); err != nil {
		return err
	}

	logger.Get().Infow("seeded demo data", "users", 2)
	return nil
}
