package main

import (
	"github.com/spf13/cobra"

	"github.com/sellvation/onewelcome/pkg/onewelcome/consent"
)

func newConsentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consent",
		Short: "Manage attribute consents",
	}

	var purpose string
	list := &cobra.Command{
		Use:   "list <userId>",
		Short: "List the consents of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.consentClient(cmd)
			if err != nil {
				return err
			}
			consents, err := client.GetConsentsByUserID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if purpose != "" {
				consents = consents.ByProcessingPurpose(purpose)
			}
			return a.print(map[string]any{
				"consents":    consents.ToMap(),
				"fingerprint": consents.Fingerprint(),
			})
		},
	}
	list.Flags().StringVar(&purpose, "purpose", "", "only show consents for this processing purpose")

	var locale string
	create := &cobra.Command{
		Use:   "create <userId> <purpose>",
		Short: "Record a consent for a processing purpose",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.consentClient(cmd)
			if err != nil {
				return err
			}
			c, err := client.CreateConsent(cmd.Context(), args[0], args[1], locale)
			if err != nil {
				return err
			}
			return a.print(c)
		},
	}
	create.Flags().StringVar(&locale, "locale", consent.DefaultLocale, "consent locale")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a consent by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.consentClient(cmd)
			if err != nil {
				return err
			}
			if err := client.DeleteConsentByID(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.print(map[string]any{"deleted": args[0]})
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func (a *app) consentClient(cmd *cobra.Command) (*consent.Client, error) {
	if err := a.cfg.Need("CONSENT_URL"); err != nil {
		return nil, err
	}
	creds, err := a.credentials(cmd.Context())
	if err != nil {
		return nil, err
	}
	return consent.NewClient(a.api, creds, a.cfg.ConsentURL), nil
}
