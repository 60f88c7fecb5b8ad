package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newAnalyticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Spending analytics and insights",
	}
	cmd.AddCommand(newAnalyticsOverviewCommand())
	cmd.AddCommand(newAnalyticsInsightsCommand())
	return cmd
}

func newAnalyticsOverviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "This month's headline numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			doc, err := a.client.Analytics.Overview(cmd.Context())
			if err != nil {
				return err
			}
			printDocument(doc, a.formatDocValue)
			return nil
		},
	}
}

func newAnalyticsInsightsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Derived spending observations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			doc, err := a.client.Analytics.Insights(cmd.Context())
			if err != nil {
				return err
			}
			printDocument(doc, a.formatDocValue)
			return nil
		},
	}
}

var moneyKeys = map[string]bool{
	"netWorth":       true,
	"monthIncome":    true,
	"monthExpenses":  true,
	"monthNet":       true,
	"dailyAverage":   true,
	"maxDailyAmount": true,
}

// formatDocValue renders an analytics document value, applying the user's
// currency preference to amounts.
func (a *app) formatDocValue(key string, v any) string {
	if f, ok := v.(float64); ok {
		switch {
		case moneyKeys[key]:
			return a.prefs.FormatAmount(f)
		case key == "savingsRate":
			return fmt.Sprintf("%.1f%%", f)
		case f == float64(int64(f)):
			return fmt.Sprintf("%d", int64(f))
		}
	}
	return fmt.Sprint(v)
}

// printDocument renders an untyped analytics document in stable key order.
func printDocument(doc map[string]any, formatValue func(key string, v any) string) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-18s %s\n", k+":", formatValue(k, doc[k]))
	}
}
