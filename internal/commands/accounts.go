package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pennywise/internal/api"
	"pennywise/internal/format"
	"pennywise/internal/models"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountsListCommand())
	cmd.AddCommand(newAccountsCreateCommand())
	cmd.AddCommand(newAccountsSummaryCommand())
	return cmd
}

func newAccountsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			accounts, err := a.client.Accounts.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tBALANCE\tDEFAULT")
			for _, acc := range accounts {
				def := ""
				if acc.IsDefault {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					acc.Name, acc.Type, acc.FormattedBalance(format.CurrencySymbol(acc.Currency)), def)
			}
			return w.Flush()
		},
	}
}

func newAccountsCreateCommand() *cobra.Command {
	var accountType, currency string
	var balance float64
	var isDefault bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			account, err := a.client.Accounts.Create(cmd.Context(), api.CreateAccountRequest{
				Name:      args[0],
				Type:      models.AccountType(accountType),
				Balance:   balance,
				Currency:  currency,
				IsDefault: isDefault,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created account %s (%s)\n", account.Name, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&accountType, "type", "t", "checking", "account type")
	cmd.Flags().StringVarP(&currency, "currency", "c", "", "currency code")
	cmd.Flags().Float64VarP(&balance, "balance", "b", 0, "opening balance")
	cmd.Flags().BoolVar(&isDefault, "default", false, "make this the default account")
	return cmd
}

func newAccountsSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show net worth across accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			summary, err := a.client.Accounts.Summary(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Accounts:    %d\n", summary.TotalAccounts)
			fmt.Printf("Assets:      %s\n", a.prefs.FormatAmount(summary.TotalAssets))
			fmt.Printf("Liabilities: %s\n", a.prefs.FormatAmount(summary.TotalLiabilities))
			fmt.Printf("Net worth:   %s\n", a.prefs.FormatAmount(summary.NetWorth))
			return nil
		},
	}
}
