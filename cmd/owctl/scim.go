package main

import (
	"github.com/spf13/cobra"

	"github.com/sellvation/onewelcome/pkg/onewelcome/scim"
)

func newSCIMCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scim",
		Short: "Read SCIM users",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a SCIM user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Need("SCIM_URL"); err != nil {
				return err
			}
			creds, err := a.credentials(cmd.Context())
			if err != nil {
				return err
			}
			u, err := scim.NewClient(a.api, creds, a.cfg.SCIMURL).GetUserByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(u)
		},
	})
	return cmd
}
