package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pennywise/internal/format"
)

func newRecurringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring transactions",
	}
	cmd.AddCommand(newRecurringListCommand())
	return cmd
}

func newRecurringListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring transaction templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			recs, err := a.client.Recurring.List(cmd.Context())
			if err != nil {
				return err
			}

			symbol := format.CurrencySymbol(a.prefs.Get().Currency)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DESCRIPTION\tAMOUNT\tFREQUENCY\tNEXT\tACTIVE")
			for _, r := range recs {
				active := "yes"
				if !r.IsActive {
					active = "no"
				}
				fmt.Fprintf(w, "%s\t%s%.2f\t%s\t%s\t%s\n",
					r.Description, symbol, r.Amount, r.Frequency,
					a.prefs.FormatDate(r.NextDate), active)
			}
			return w.Flush()
		},
	}
}
