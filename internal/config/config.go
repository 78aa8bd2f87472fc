// Package config loads owctl settings from an optional .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Config holds every setting the CLI maps onto the library constructors.
type Config struct {
	AuthURL      string `mapstructure:"ONEWELCOME_AUTH_URL"`      // Required: token endpoint
	ClientID     string `mapstructure:"ONEWELCOME_CLIENT_ID"`     // Required
	ClientSecret string `mapstructure:"ONEWELCOME_CLIENT_SECRET"` // Required
	Scope        string `mapstructure:"ONEWELCOME_SCOPE"`
	Username     string `mapstructure:"ONEWELCOME_USERNAME"` // Required for the password grant
	Password     string `mapstructure:"ONEWELCOME_PASSWORD"` // Required for the password grant
	GrantType    string `mapstructure:"ONEWELCOME_GRANT_TYPE"`

	RITMURL         string `mapstructure:"RITM_URL"`      // Profile lookup, %s is the user UUID
	RITMSaveURL     string `mapstructure:"RITM_SAVE_URL"` // Profile update, %s is the user UUID
	RITMCustomerTag string `mapstructure:"RITM_CUSTOMER_TAG"`
	RITMCustomerKey string `mapstructure:"RITM_CUSTOMER_KEY"`
	SCIMURL         string `mapstructure:"SCIM_URL"`         // %s is the user id
	ConsentURL      string `mapstructure:"CONSENT_URL"`      // Base URL of the consent API
	NotificationURL string `mapstructure:"NOTIFICATION_URL"` // %s is the subscription id

	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"`     // (default: 15s)
	RateLimitRPS   float64       `mapstructure:"RATE_LIMIT_RPS"`   // 0 disables the limiter
	RateLimitBurst int           `mapstructure:"RATE_LIMIT_BURST"` // (default: 1)

	Env       string `mapstructure:"ENV"`        // (default: dev)
	LogLevel  string `mapstructure:"LOG_LEVEL"`  // (default: info)
	LogFormat string `mapstructure:"LOG_FORMAT"` // (default: json)
}

var keys = []string{
	"ONEWELCOME_AUTH_URL",
	"ONEWELCOME_CLIENT_ID",
	"ONEWELCOME_CLIENT_SECRET",
	"ONEWELCOME_SCOPE",
	"ONEWELCOME_USERNAME",
	"ONEWELCOME_PASSWORD",
	"ONEWELCOME_GRANT_TYPE",
	"RITM_URL",
	"RITM_SAVE_URL",
	"RITM_CUSTOMER_TAG",
	"RITM_CUSTOMER_KEY",
	"SCIM_URL",
	"CONSENT_URL",
	"NOTIFICATION_URL",
	"HTTP_TIMEOUT",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"ENV",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// Load reads envFile when it exists, then lets the environment override it.
// An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("ONEWELCOME_GRANT_TYPE", "password")
	v.SetDefault("HTTP_TIMEOUT", 15*time.Second)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 1)
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !missingFile(err) {
			return Config{}, fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.AuthURL = strings.TrimSpace(cfg.AuthURL)
	cfg.GrantType = strings.TrimSpace(cfg.GrantType)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func missingFile(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Validate reports every problem with the token settings and limits at once.
// Endpoint URLs are checked per command with Need.
func (c Config) Validate() error {
	var errs *multierror.Error

	required := map[string]string{
		"ONEWELCOME_AUTH_URL":      c.AuthURL,
		"ONEWELCOME_CLIENT_ID":     c.ClientID,
		"ONEWELCOME_CLIENT_SECRET": c.ClientSecret,
	}
	if c.GrantType == "password" {
		required["ONEWELCOME_USERNAME"] = c.Username
		required["ONEWELCOME_PASSWORD"] = c.Password
	}
	errs = multierror.Append(errs, missing(required)...)

	if c.HTTPTimeout <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout))
	}
	if c.RateLimitRPS < 0 {
		errs = multierror.Append(errs, fmt.Errorf("RATE_LIMIT_RPS must not be negative, got %g", c.RateLimitRPS))
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		errs = multierror.Append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1 when rate limiting, got %d", c.RateLimitBurst))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = multierror.Append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	return errs.ErrorOrNil()
}

// Need checks that the named settings are present.
func (c Config) Need(names ...string) error {
	values := c.values()
	want := make(map[string]string, len(names))
	for _, n := range names {
		v, ok := values[n]
		if !ok {
			return fmt.Errorf("unknown setting %s", n)
		}
		want[n] = v
	}

	var errs *multierror.Error
	errs = multierror.Append(errs, missing(want)...)
	return errs.ErrorOrNil()
}

func (c Config) values() map[string]string {
	return map[string]string{
		"RITM_URL":          c.RITMURL,
		"RITM_SAVE_URL":     c.RITMSaveURL,
		"RITM_CUSTOMER_TAG": c.RITMCustomerTag,
		"RITM_CUSTOMER_KEY": c.RITMCustomerKey,
		"SCIM_URL":          c.SCIMURL,
		"CONSENT_URL":       c.ConsentURL,
		"NOTIFICATION_URL":  c.NotificationURL,
	}
}

// missing returns one error per blank entry, in key order.
func missing(settings map[string]string) []error {
	var out []error
	for _, k := range keys {
		v, ok := settings[k]
		if ok && strings.TrimSpace(v) == "" {
			out = append(out, fmt.Errorf("%s is required", k))
		}
	}
	return out
}
