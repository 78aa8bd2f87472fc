package onewelcome

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
)

// DefaultGrantType is used when TokenConfig.GrantType is empty.
const DefaultGrantType = "password"

// TokenConfig holds what the token endpoint needs to issue credentials.
type TokenConfig struct {
	URL          string
	ClientID     string
	ClientSecret string
	Scope        string
	Username     string
	Password     string
	GrantType    string
}

// LogValue implements slog.LogValuer. The secret and password are omitted.
func (tc TokenConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", tc.URL),
		slog.String("client_id", tc.ClientID),
		slog.String("scope", tc.Scope),
		slog.String("username", tc.Username),
		slog.String("grant_type", tc.grantType()),
	)
}

func (tc TokenConfig) grantType() string {
	if tc.GrantType == "" {
		return DefaultGrantType
	}
	return tc.GrantType
}

// ObtainCredentials exchanges tc for Credentials.
//
// Transport, HTTP and JSON failures are wrapped in a *TokenAcquisitionError.
// A successful response whose access_token is absent or null yields an
// *UnexpectedResponseError.
func (c *APIClient) ObtainCredentials(ctx context.Context, tc TokenConfig) (*Credentials, error) {
	form := url.Values{
		"grant_type":    {tc.grantType()},
		"client_id":     {tc.ClientID},
		"client_secret": {tc.ClientSecret},
		"scope":         {tc.Scope},
		"username":      {tc.Username},
		"password":      {tc.Password},
	}

	payload, err := c.Execute(ctx, Request{Method: http.MethodPost, URL: tc.URL, Form: form})
	if err != nil {
		return nil, &TokenAcquisitionError{Err: err}
	}

	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}
	if obj["access_token"] == nil {
		return nil, &UnexpectedResponseError{Reason: "token response carries no access_token"}
	}

	return CredentialsFromTokenResponse(obj)
}
