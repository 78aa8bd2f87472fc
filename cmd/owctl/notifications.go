package main

import (
	"github.com/spf13/cobra"

	"github.com/sellvation/onewelcome/pkg/onewelcome/notification"
)

func newNotificationsCmd(a *app) *cobra.Command {
	var transitionsOnly bool

	cmd := &cobra.Command{
		Use:   "notifications <subscriptionId>",
		Short: "Fetch the current notification page of a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Need("NOTIFICATION_URL"); err != nil {
				return err
			}
			creds, err := a.credentials(cmd.Context())
			if err != nil {
				return err
			}
			n, err := notification.NewClient(a.api, creds, a.cfg.NotificationURL).
				GetNotificationBySubscriptionID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !transitionsOnly {
				return a.print(n)
			}

			events := n.Events()
			transitions := events.Transitions()
			return a.print(map[string]any{
				"page":    n.Page(),
				"size":    n.Size(),
				"results": transitions.ToMap(),
			})
		},
	}
	cmd.Flags().BoolVar(&transitionsOnly, "transitions", false, "only print lifecycle state transitions")
	return cmd
}
