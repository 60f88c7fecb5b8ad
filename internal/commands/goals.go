package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pennywise/internal/api"
)

func newGoalsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}
	cmd.AddCommand(newGoalsListCommand())
	cmd.AddCommand(newGoalsCreateCommand())
	cmd.AddCommand(newGoalsContributeCommand())
	return cmd
}

func newGoalsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			goals, err := a.client.Goals.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSAVED\tTARGET\tPROGRESS")
			for _, g := range goals {
				done := ""
				if g.Completed() {
					done = " ✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%%s\n",
					g.Name, a.prefs.FormatAmount(g.CurrentAmount),
					a.prefs.FormatAmount(g.TargetAmount), g.ProgressPercent(), done)
			}
			return w.Flush()
		},
	}
}

func newGoalsCreateCommand() *cobra.Command {
	var category, icon, color string
	var target, current float64
	var priority int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			goal, err := a.client.Goals.Create(cmd.Context(), api.CreateGoalRequest{
				Name:          args[0],
				TargetAmount:  target,
				CurrentAmount: current,
				Category:      category,
				Icon:          icon,
				Color:         color,
				Priority:      priority,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created goal %s: %s target\n", goal.Name, a.prefs.FormatAmount(goal.TargetAmount))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&target, "target", "t", 0, "target amount (required)")
	cmd.Flags().Float64Var(&current, "current", 0, "amount already saved")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category")
	cmd.Flags().StringVar(&icon, "icon", "", "icon name")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #2E86AB")
	cmd.Flags().IntVar(&priority, "priority", 0, "priority (higher sorts first)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newGoalsContributeCommand() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "contribute <goal-id>",
		Short: "Add money toward a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.loadPrefs(cmd.Context())

			goal, err := a.client.Goals.Contribute(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}

			fmt.Printf("%s: %s of %s (%.0f%%)\n",
				goal.Name, a.prefs.FormatAmount(goal.CurrentAmount),
				a.prefs.FormatAmount(goal.TargetAmount), goal.ProgressPercent())
			if goal.Completed() {
				fmt.Println("Goal reached!")
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount to contribute (required)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
