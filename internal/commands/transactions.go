package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pennywise/internal/api"
	"pennywise/internal/format"
	"pennywise/internal/models"
)

func newTransactionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Manage transactions",
	}
	cmd.AddCommand(newTxListCommand())
	cmd.AddCommand(newTxAddCommand())
	cmd.AddCommand(newTxSummaryCommand())
	cmd.AddCommand(newTxTransferCommand())
	return cmd
}

func newTxListCommand() *cobra.Command {
	var accountID, category, txType string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			txs, err := a.client.Transactions.List(cmd.Context(), api.ListTransactionsOptions{
				AccountID: accountID,
				Category:  category,
				Type:      models.TransactionType(txType),
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			symbol := format.CurrencySymbol(a.prefs.Get().Currency)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
			for _, t := range txs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					a.prefs.FormatDate(t.Date), t.Description, t.Category, t.FormattedAmount(symbol))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account ID")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "filter by type (income/expense)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "maximum number of transactions")
	return cmd
}

func newTxAddCommand() *cobra.Command {
	var accountID, category, txType, date string
	var amount float64
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			when := time.Now()
			if date != "" {
				when = format.ParseDate(date, a.prefs.Get().DateFormat)
				if when.IsZero() {
					return fmt.Errorf("unrecognized date %q", date)
				}
			}

			tx, err := a.client.Transactions.Create(cmd.Context(), api.CreateTransactionRequest{
				AccountID:   accountID,
				Amount:      amount,
				Description: args[0],
				Category:    category,
				Type:        models.TransactionType(txType),
				Date:        when,
				Tags:        tags,
			})
			if err != nil {
				return err
			}

			symbol := format.CurrencySymbol(a.prefs.Get().Currency)
			fmt.Printf("Recorded %s %s\n", tx.FormattedAmount(symbol), tx.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID (required)")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "Uncategorized", "category")
	cmd.Flags().StringVarP(&txType, "type", "t", "expense", "transaction type (income/expense)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date in your preferred format (default today)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags (repeatable)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newTxSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show income and spending totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			summary, err := a.client.Transactions.Summary(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Income:   %s\n", a.prefs.FormatAmount(summary.Income))
			fmt.Printf("Expenses: %s\n", a.prefs.FormatAmount(summary.Expenses))
			fmt.Printf("Balance:  %s\n", a.prefs.FormatAmount(summary.Balance))
			if len(summary.ByCategory) > 0 {
				fmt.Println("\nBy category:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, cs := range summary.ByCategory {
					fmt.Fprintf(w, "  %s\t%s\t(%d)\n", cs.Category, a.prefs.FormatAmount(cs.Amount), cs.Count)
				}
				return w.Flush()
			}
			return nil
		},
	}
}

func newTxTransferCommand() *cobra.Command {
	var from, to, description string
	var amount float64

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money between accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			err = a.client.Transactions.Transfer(cmd.Context(), api.TransferRequest{
				FromAccountID: from,
				ToAccountID:   to,
				Amount:        amount,
				Description:   description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Transferred %s\n", a.prefs.FormatAmount(amount))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source account ID (required)")
	cmd.Flags().StringVar(&to, "to", "", "destination account ID (required)")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount (required)")
	cmd.Flags().StringVarP(&description, "description", "m", "", "description")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
