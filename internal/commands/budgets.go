package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pennywise/internal/api"
	"pennywise/internal/models"
)

func newBudgetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage budgets",
	}
	cmd.AddCommand(newBudgetsListCommand())
	cmd.AddCommand(newBudgetsCreateCommand())
	cmd.AddCommand(newBudgetsSummaryCommand())
	return cmd
}

func newBudgetsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			budgets, err := a.client.Budgets.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tPERIOD\tSPENT\tBUDGET\tUSED")
			for _, b := range budgets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d%%\n",
					b.Name, b.Category, b.Period,
					a.prefs.FormatAmount(b.Spent), a.prefs.FormatAmount(b.Amount), b.PercentSpent())
			}
			return w.Flush()
		},
	}
}

func newBudgetsCreateCommand() *cobra.Command {
	var category, period string
	var amount float64

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			if category == "" {
				category = args[0]
			}
			budget, err := a.client.Budgets.Create(cmd.Context(), api.CreateBudgetRequest{
				Name:      args[0],
				Amount:    amount,
				Category:  category,
				Period:    models.BudgetPeriod(period),
				StartDate: time.Now(),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created budget %s: %s per %s\n",
				budget.Name, a.prefs.FormatAmount(budget.Amount), budget.Period)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "budget amount (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category (defaults to the budget name)")
	cmd.Flags().StringVarP(&period, "period", "p", "monthly", "period (monthly/quarterly/yearly)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBudgetsSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show budget utilization",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			summary, err := a.client.Budgets.Summary(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Budgeted:  %s\n", a.prefs.FormatAmount(summary.TotalBudgeted))
			fmt.Printf("Spent:     %s\n", a.prefs.FormatAmount(summary.TotalSpent))
			fmt.Printf("Remaining: %s\n", a.prefs.FormatAmount(summary.Remaining))
			fmt.Printf("Used:      %.0f%%\n", summary.UtilizationPercentage)
			return nil
		},
	}
}
