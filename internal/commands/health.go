package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Backend at %s is healthy\n", a.cfg.APIBaseURL)
			return nil
		},
	}
}
