package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain an access token and print its metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := a.credentials(cmd.Context())
			if err != nil {
				return err
			}
			if show {
				return a.print(creds)
			}

			out := map[string]any{
				"token_type": creds.TokenType(),
				"scope":      creds.Scope(),
				"expires_at": time.Unix(creds.ExpiresAt(), 0).UTC().Format(time.RFC3339),
			}
			if sub, err := creds.Subject(); err == nil {
				out["subject"] = sub
			}
			return a.print(out)
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the raw tokens")
	return cmd
}
