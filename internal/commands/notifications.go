package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pennywise/internal/models"
)

func newNotificationsCommand() *cobra.Command {
	var watch bool
	var interval time.Duration
	var markRead bool

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			printBatch := func(ns []models.Notification) {
				for _, n := range ns {
					fmt.Printf("[%s] %s — %s\n", n.Type, n.Title, n.Message)
				}
			}

			unread, err := a.client.Notifications.Unread(ctx)
			if err != nil {
				return err
			}
			if len(unread) == 0 && !watch {
				fmt.Println("No unread notifications")
			}
			printBatch(unread)

			if markRead {
				if err := a.client.Notifications.MarkAllRead(ctx); err != nil {
					return err
				}
			}

			if !watch {
				return nil
			}

			// Keep polling until interrupted.
			a.client.Notifications.Poll(ctx, interval, func(ns []models.Notification, err error) {
				if err != nil {
					fmt.Printf("poll error: %v\n", err)
					return
				}
				printBatch(ns)
			})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling for new notifications")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "polling interval with --watch")
	cmd.Flags().BoolVar(&markRead, "read", false, "mark listed notifications as read")
	return cmd
}
