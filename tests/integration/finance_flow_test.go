package integration

import (
	"context"
	"testing"
	"time"

	"pennywise/internal/api"
	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/testutil"
)

func TestAccountFlow(t *testing.T) {
	client := setup(t)
	registerAndLogin(t, client)
	ctx := context.Background()

	// The first account becomes the default even when not requested.
	checking, err := client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Checking", Type: models.AccountTypeChecking, Balance: 100,
	})
	testutil.AssertNoError(t, err)
	if !checking.IsDefault {
		t.Error("first account should become the default")
	}

	// Making a second account the default clears the first.
	savings, err := client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Savings", Type: models.AccountTypeSavings, Balance: 500, IsDefault: true,
	})
	testutil.AssertNoError(t, err)
	if !savings.IsDefault {
		t.Error("second account should be the default")
	}

	accounts, err := client.Accounts.List(ctx)
	testutil.AssertNoError(t, err)
	defaults := 0
	for _, a := range accounts {
		if a.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("got %d default accounts, want exactly 1", defaults)
	}

	// Credit balances count as liabilities in the summary.
	_, err = client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Card", Type: models.AccountTypeCredit, Balance: 200,
	})
	testutil.AssertNoError(t, err)

	summary, err := client.Accounts.Summary(ctx)
	testutil.AssertNoError(t, err)
	if summary.TotalAssets != 600 || summary.TotalLiabilities != 200 || summary.NetWorth != 400 {
		t.Errorf("summary = %+v, want assets 600, liabilities 200, net worth 400", summary)
	}

	// An account with transactions cannot be deleted.
	_, err = client.Transactions.Create(ctx, api.CreateTransactionRequest{
		AccountID: checking.ID, Amount: 10, Description: "Coffee",
		Category: "Food", Type: models.TransactionTypeExpense,
	})
	testutil.AssertNoError(t, err)
	err = client.Accounts.Delete(ctx, checking.ID)
	testutil.AssertAppError(t, err, apperrors.ErrAccountInUse.Code)

	testutil.AssertNoError(t, client.Accounts.Delete(ctx, savings.ID))
	_, err = client.Accounts.Get(ctx, savings.ID)
	testutil.AssertAppError(t, err, apperrors.ErrAccountNotFound.Code)
}

func TestTransactionFlow(t *testing.T) {
	client := setup(t)
	registerAndLogin(t, client)
	ctx := context.Background()

	account, err := client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Checking", Type: models.AccountTypeChecking, Balance: 1000,
	})
	testutil.AssertNoError(t, err)

	// Expense reduces the balance, income raises it.
	_, err = client.Transactions.Create(ctx, api.CreateTransactionRequest{
		AccountID: account.ID, Amount: 250, Description: "Rent",
		Category: "Housing", Type: models.TransactionTypeExpense,
	})
	testutil.AssertNoError(t, err)
	_, err = client.Transactions.Create(ctx, api.CreateTransactionRequest{
		AccountID: account.ID, Amount: 100, Description: "Refund",
		Category: "Income", Type: models.TransactionTypeIncome,
	})
	testutil.AssertNoError(t, err)

	fresh, err := client.Accounts.Get(ctx, account.ID)
	testutil.AssertNoError(t, err)
	if fresh.Balance != 850 {
		t.Errorf("balance = %v, want 850", fresh.Balance)
	}

	summary, err := client.Transactions.Summary(ctx)
	testutil.AssertNoError(t, err)
	if summary.Income != 100 || summary.Expenses != 250 || summary.Balance != -150 {
		t.Errorf("summary = %+v, want income 100, expenses 250, balance -150", summary)
	}

	// Deleting the expense restores the balance.
	txs, err := client.Transactions.List(ctx, api.ListTransactionsOptions{Category: "Housing"})
	testutil.AssertNoError(t, err)
	if len(txs) != 1 {
		t.Fatalf("got %d housing transactions, want 1", len(txs))
	}
	testutil.AssertNoError(t, client.Transactions.Delete(ctx, txs[0].ID))

	fresh, err = client.Accounts.Get(ctx, account.ID)
	testutil.AssertNoError(t, err)
	if fresh.Balance != 1100 {
		t.Errorf("balance after delete = %v, want 1100", fresh.Balance)
	}
}

func TestTransferFlow(t *testing.T) {
	client := setup(t)
	registerAndLogin(t, client)
	ctx := context.Background()

	from, err := client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Checking", Type: models.AccountTypeChecking, Balance: 300,
	})
	testutil.AssertNoError(t, err)
	to, err := client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Savings", Type: models.AccountTypeSavings, Balance: 0,
	})
	testutil.AssertNoError(t, err)

	err = client.Transactions.Transfer(ctx, api.TransferRequest{
		FromAccountID: from.ID, ToAccountID: from.ID, Amount: 50,
	})
	testutil.AssertAppError(t, err, apperrors.ErrSameAccountTransfer.Code)

	testutil.AssertNoError(t, client.Transactions.Transfer(ctx, api.TransferRequest{
		FromAccountID: from.ID, ToAccountID: to.ID, Amount: 120, Description: "Savings top-up",
	}))

	fromFresh, err := client.Accounts.Get(ctx, from.ID)
	testutil.AssertNoError(t, err)
	toFresh, err := client.Accounts.Get(ctx, to.ID)
	testutil.AssertNoError(t, err)
	if fromFresh.Balance != 180 || toFresh.Balance != 120 {
		t.Errorf("balances = %v/%v, want 180/120", fromFresh.Balance, toFresh.Balance)
	}
}

func TestBudgetFlow(t *testing.T) {
	client := setup(t)
	registerAndLogin(t, client)
	ctx := context.Background()

	account, err := client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Checking", Type: models.AccountTypeChecking, Balance: 1000,
	})
	testutil.AssertNoError(t, err)

	start := time.Now().UTC().Truncate(time.Hour)
	budget, err := client.Budgets.Create(ctx, api.CreateBudgetRequest{
		Name: "Food", Amount: 100, Category: "Food",
		Period: models.BudgetPeriodMonthly, StartDate: start,
	})
	testutil.AssertNoError(t, err)

	// A missing end date is derived from the period.
	wantEnd := start.AddDate(0, 1, 0)
	if !budget.EndDate.Equal(wantEnd) {
		t.Errorf("end date = %v, want %v", budget.EndDate, wantEnd)
	}

	// Spending in the category rolls into the budget.
	_, err = client.Transactions.Create(ctx, api.CreateTransactionRequest{
		AccountID: account.ID, Amount: 95, Description: "Groceries",
		Category: "Food", Type: models.TransactionTypeExpense,
	})
	testutil.AssertNoError(t, err)

	budget, err = client.Budgets.Get(ctx, budget.ID)
	testutil.AssertNoError(t, err)
	if budget.Spent != 95 {
		t.Errorf("spent = %v, want 95", budget.Spent)
	}
	if budget.PercentSpent() != 95 {
		t.Errorf("percent spent = %d, want 95", budget.PercentSpent())
	}

	// Crossing the alert threshold raised a budget notification.
	unread, err := client.Notifications.Unread(ctx)
	testutil.AssertNoError(t, err)
	found := false
	for _, n := range unread {
		if n.Type == models.NotificationTypeBudget {
			found = true
		}
	}
	if !found {
		t.Error("expected a budget alert notification")
	}
}

func TestGoalFlow(t *testing.T) {
	client := setup(t)
	registerAndLogin(t, client)
	ctx := context.Background()

	goal, err := client.Goals.Create(ctx, api.CreateGoalRequest{
		Name: "Bike", TargetAmount: 200, CurrentAmount: 150, Color: "#2E86AB",
	})
	testutil.AssertNoError(t, err)
	if goal.Completed() {
		t.Fatal("goal should not start completed")
	}

	goal, err = client.Goals.Contribute(ctx, goal.ID, 75)
	testutil.AssertNoError(t, err)
	if goal.CurrentAmount != 225 {
		t.Errorf("current amount = %v, want 225", goal.CurrentAmount)
	}
	if !goal.Completed() {
		t.Error("goal should be completed")
	}
	if goal.ProgressPercent() != 112.5 {
		t.Errorf("progress = %v, want 112.5 (unclamped)", goal.ProgressPercent())
	}
	if goal.BarPercent() != 100 {
		t.Errorf("bar percent = %v, want 100 (clamped)", goal.BarPercent())
	}

	summary, err := client.Goals.Summary(ctx)
	testutil.AssertNoError(t, err)
	if summary.TotalGoals != 1 || summary.Completed != 1 || summary.InProgress != 0 {
		t.Errorf("summary = %+v, want 1 goal, all completed", summary)
	}
	if summary.TotalTarget != 200 || summary.TotalSaved != 225 {
		t.Errorf("summary totals = %v/%v, want target 200, saved 225", summary.TotalTarget, summary.TotalSaved)
	}
	if summary.OverallPercent != 112.5 {
		t.Errorf("overall percent = %v, want 112.5", summary.OverallPercent)
	}

	// Reaching the target raised a notification.
	unread, err := client.Notifications.Unread(ctx)
	testutil.AssertNoError(t, err)
	found := false
	for _, n := range unread {
		if n.Type == models.NotificationTypeGoal {
			found = true
		}
	}
	if !found {
		t.Error("expected a goal reached notification")
	}
}

func TestNotificationFlow(t *testing.T) {
	client := setup(t)
	registerAndLogin(t, client)
	ctx := context.Background()

	// Drive a goal to completion to generate a notification.
	goal, err := client.Goals.Create(ctx, api.CreateGoalRequest{
		Name: "Emergency fund", TargetAmount: 50,
	})
	testutil.AssertNoError(t, err)
	_, err = client.Goals.Contribute(ctx, goal.ID, 50)
	testutil.AssertNoError(t, err)

	summary, err := client.Notifications.Summary(ctx)
	testutil.AssertNoError(t, err)
	if summary.UnreadCount != 1 {
		t.Fatalf("unread count = %d, want 1", summary.UnreadCount)
	}

	testutil.AssertNoError(t, client.Notifications.MarkAllRead(ctx))
	summary, err = client.Notifications.Summary(ctx)
	testutil.AssertNoError(t, err)
	if summary.UnreadCount != 0 {
		t.Errorf("unread count after mark-all = %d, want 0", summary.UnreadCount)
	}

	all, err := client.Notifications.List(ctx, 0)
	testutil.AssertNoError(t, err)
	if len(all) != 1 {
		t.Fatalf("got %d notifications, want 1", len(all))
	}
	testutil.AssertNoError(t, client.Notifications.Delete(ctx, all[0].ID))

	all, err = client.Notifications.List(ctx, 0)
	testutil.AssertNoError(t, err)
	if len(all) != 0 {
		t.Errorf("got %d notifications after delete, want 0", len(all))
	}
}

func TestRecurringFlow(t *testing.T) {
	client := setup(t)
	registerAndLogin(t, client)
	ctx := context.Background()

	account, err := client.Accounts.Create(ctx, api.CreateAccountRequest{
		Name: "Checking", Type: models.AccountTypeChecking, Balance: 100,
	})
	testutil.AssertNoError(t, err)

	rec, err := client.Recurring.Create(ctx, api.CreateRecurringRequest{
		AccountID: account.ID, Amount: 9.99, Description: "Music subscription",
		Category: "Entertainment", Type: models.TransactionTypeExpense,
		Frequency: models.FrequencyMonthly, NextDate: time.Now().AddDate(0, 1, 0),
	})
	testutil.AssertNoError(t, err)
	if !rec.IsActive {
		t.Error("new recurring template should be active")
	}

	summary, err := client.Recurring.Summary(ctx)
	testutil.AssertNoError(t, err)
	if summary.TotalTemplates != 1 || summary.Active != 1 || summary.Paused != 0 {
		t.Errorf("summary = %+v, want 1 active template", summary)
	}
	if summary.ActiveTotal != 9.99 {
		t.Errorf("active total = %v, want 9.99", summary.ActiveTotal)
	}
	if summary.NextDue == nil || !summary.NextDue.Equal(rec.NextDate) {
		t.Errorf("next due = %v, want %v", summary.NextDue, rec.NextDate)
	}

	paused := false
	rec, err = client.Recurring.Update(ctx, rec.ID, api.UpdateRecurringRequest{IsActive: &paused})
	testutil.AssertNoError(t, err)
	if rec.IsActive {
		t.Error("template should be paused")
	}

	summary, err = client.Recurring.Summary(ctx)
	testutil.AssertNoError(t, err)
	if summary.Active != 0 || summary.Paused != 1 {
		t.Errorf("summary after pause = %+v, want 1 paused template", summary)
	}
	if summary.NextDue != nil {
		t.Errorf("next due after pause = %v, want nil", summary.NextDue)
	}

	testutil.AssertNoError(t, client.Recurring.Delete(ctx, rec.ID))
	_, err = client.Recurring.Get(ctx, rec.ID)
	testutil.AssertAppError(t, err, apperrors.ErrRecurringNotFound.Code)
}
