package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/spf13/cobra"

	"github.com/sellvation/onewelcome/internal/config"
	"github.com/sellvation/onewelcome/internal/logging"
	"github.com/sellvation/onewelcome/pkg/onewelcome"
)

// app is the state shared by every subcommand after the root pre-run.
type app struct {
	envFile string
	cfg     config.Config
	logger  *slog.Logger
	api     *onewelcome.APIClient
	out     io.Writer
	errOut  io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "owctl",
		Short:         "OneWelcome client",
		Long:          `Query and update OneWelcome profiles, consents and notifications.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional dotenv file read before the environment")

	root.AddCommand(
		newTokenCmd(a),
		newProfileCmd(a),
		newSCIMCmd(a),
		newConsentCmd(a),
		newNotificationsCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Config{
		Service: "owctl",
		Version: version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  a.errOut,
	})

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.HTTPTimeout

	opts := []onewelcome.Option{
		onewelcome.WithHTTPClient(httpClient),
		onewelcome.WithLogger(a.logger),
		onewelcome.WithUserAgent("owctl/" + version),
	}
	if cfg.RateLimitRPS > 0 {
		opts = append(opts, onewelcome.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	a.api = onewelcome.NewAPIClient(opts...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithCommand(logging.WithContext(ctx, a.logger), cmd.CommandPath()))
	return nil
}

// credentials obtains a fresh token for the configured account.
func (a *app) credentials(ctx context.Context) (*onewelcome.Credentials, error) {
	tc := onewelcome.TokenConfig{
		URL:          a.cfg.AuthURL,
		ClientID:     a.cfg.ClientID,
		ClientSecret: a.cfg.ClientSecret,
		Scope:        a.cfg.Scope,
		Username:     a.cfg.Username,
		Password:     a.cfg.Password,
		GrantType:    a.cfg.GrantType,
	}
	logging.FromContext(ctx).Debug("obtaining token", "token_config", tc)

	creds, err := a.api.ObtainCredentials(ctx, tc)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("token obtained", "credentials", creds)
	return creds, nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
