package models

import (
	"testing"
	"time"
)

func TestBudgetRemaining(t *testing.T) {
	b := &Budget{Amount: 500, Spent: 120.5}
	if got := b.Remaining(); got != 379.5 {
		t.Errorf("Remaining = %v, want 379.5", got)
	}
}

func TestBudgetPercentSpent(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		spent  float64
		want   int
	}{
		{"normal", 200, 50, 25},
		{"rounds", 300, 100, 33},
		{"overspent clamps to 100", 100, 250, 100},
		{"exactly full", 100, 100, 100},
		{"zero amount", 0, 50, 0},
		{"negative spent clamps to 0", 100, -10, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := &Budget{Amount: c.amount, Spent: c.spent}
			if got := b.PercentSpent(); got != c.want {
				t.Errorf("PercentSpent = %d, want %d", got, c.want)
			}
		})
	}
}

func TestCalculateEndDate(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		period BudgetPeriod
		want   time.Time
	}{
		{BudgetPeriodMonthly, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{BudgetPeriodQuarterly, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{BudgetPeriodYearly, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{BudgetPeriod("bogus"), time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		if got := CalculateEndDate(start, c.period); !got.Equal(c.want) {
			t.Errorf("CalculateEndDate(%s) = %v, want %v", c.period, got, c.want)
		}
	}
}

func TestGoalProgress(t *testing.T) {
	g := &Goal{TargetAmount: 1000, CurrentAmount: 1200}
	if got := g.ProgressPercent(); got != 120 {
		t.Errorf("ProgressPercent = %v, want 120 (unclamped)", got)
	}
	if got := g.BarPercent(); got != 100 {
		t.Errorf("BarPercent = %v, want 100 (clamped)", got)
	}
	if !g.Completed() {
		t.Error("expected goal to be completed")
	}

	empty := &Goal{TargetAmount: 0, CurrentAmount: 50}
	if got := empty.ProgressPercent(); got != 0 {
		t.Errorf("zero-target ProgressPercent = %v, want 0", got)
	}
	if empty.Completed() {
		t.Error("zero-target goal must not report completed")
	}
}

func TestTransactionFormattedAmount(t *testing.T) {
	income := &Transaction{Type: TransactionTypeIncome, Amount: 250}
	if got := income.FormattedAmount("$"); got != "+ $250.00" {
		t.Errorf("income = %q", got)
	}

	expense := &Transaction{Type: TransactionTypeExpense, Amount: 19.99}
	if got := expense.FormattedAmount("€"); got != "- €19.99" {
		t.Errorf("expense = %q", got)
	}
}

func TestAccountFormattedBalance(t *testing.T) {
	a := &Account{Balance: 1500.5}
	if got := a.FormattedBalance("$"); got != "$1500.50" {
		t.Errorf("FormattedBalance = %q", got)
	}
}

func TestUserFullName(t *testing.T) {
	u := &User{Username: "tuser", FirstName: "Test", LastName: "User"}
	if got := u.FullName(); got != "Test User" {
		t.Errorf("FullName = %q", got)
	}
	if got := (&User{Username: "tuser"}).FullName(); got != "tuser" {
		t.Errorf("fallback FullName = %q", got)
	}
}

func TestRecurringAdvance(t *testing.T) {
	from := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		freq Frequency
		want time.Time
	}{
		{FrequencyDaily, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{FrequencyWeekly, time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)},
		{FrequencyMonthly, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{FrequencyYearly, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		r := &RecurringTransaction{Frequency: c.freq}
		if got := r.Advance(from); !got.Equal(c.want) {
			t.Errorf("Advance(%s) = %v, want %v", c.freq, got, c.want)
		}
	}
}
