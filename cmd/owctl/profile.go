package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sellvation/onewelcome/internal/logging"
	"github.com/sellvation/onewelcome/pkg/onewelcome/ritm"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Read and update RITM profiles",
	}
	cmd.AddCommand(newProfileGetCmd(a), newProfileStateCmd(a), newProfileRenameCmd(a))
	return cmd
}

func (a *app) ritmClient(cmd *cobra.Command) (*ritm.Client, error) {
	if err := a.cfg.Need("RITM_URL", "RITM_SAVE_URL", "RITM_CUSTOMER_TAG", "RITM_CUSTOMER_KEY"); err != nil {
		return nil, err
	}
	creds, err := a.credentials(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ritm.NewClient(a.api, creds,
		ritm.Endpoints{Get: a.cfg.RITMURL, Save: a.cfg.RITMSaveURL},
		ritm.Schema{CustomerTag: a.cfg.RITMCustomerTag, CustomerKey: a.cfg.RITMCustomerKey},
	), nil
}

func newProfileGetCmd(a *app) *cobra.Command {
	var fingerprint bool

	cmd := &cobra.Command{
		Use:   "get <uuid>",
		Short: "Fetch a profile by user UUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.ritmClient(cmd)
			if err != nil {
				return err
			}
			u, err := client.GetUserByUUID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("profile %s not found", args[0])
			}
			if fingerprint {
				return a.print(map[string]any{"uuid": u.UUID(), "fingerprint": u.Fingerprint()})
			}
			return a.print(u)
		},
	}
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "print only the content fingerprint")
	return cmd
}

func newProfileStateCmd(a *app) *cobra.Command {
	var lastActivity string

	cmd := &cobra.Command{
		Use:   "state <uuid> <ACTIVE|GRACE|INACTIVE>",
		Short: "Set the lifecycle state of a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.ritmClient(cmd)
			if err != nil {
				return err
			}
			if lastActivity == "" {
				lastActivity = time.Now().UTC().Format(ritm.DateLayout)
			}

			ok, err := client.SaveStateForUserUUID(cmd.Context(), args[0], args[1], lastActivity)
			if err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Info("state saved", "uuid", args[0], "state", args[1], "confirmed", ok)
			return a.print(map[string]any{"uuid": args[0], "state": args[1], "confirmed": ok})
		},
	}
	cmd.Flags().StringVar(&lastActivity, "last-activity", "", "last activity date (default: now, "+ritm.DateLayout+")")
	return cmd
}

func newProfileRenameCmd(a *app) *cobra.Command {
	var first, middle, last string

	cmd := &cobra.Command{
		Use:   "rename <uuid>",
		Short: "Change the names on a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("first") && !flags.Changed("middle") && !flags.Changed("last") {
				return fmt.Errorf("nothing to change: pass --first, --middle or --last")
			}

			client, err := a.ritmClient(cmd)
			if err != nil {
				return err
			}
			u, err := client.GetUserByUUID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("profile %s not found", args[0])
			}

			if flags.Changed("first") {
				u.SetFirstName(first)
			}
			if flags.Changed("middle") {
				u.SetMiddleName(middle)
			}
			if flags.Changed("last") {
				u.SetLastName(last)
			}

			saved, err := client.SaveUser(cmd.Context(), u)
			if err != nil {
				return err
			}
			return a.print(saved)
		},
	}
	cmd.Flags().StringVar(&first, "first", "", "first name")
	cmd.Flags().StringVar(&middle, "middle", "", "surname prefix")
	cmd.Flags().StringVar(&last, "last", "", "surname")
	return cmd
}
