package onewelcome

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
)

// Credentials is the bearer token bundle returned by the token endpoint.
// It is read-only after construction.
type Credentials struct {
	accessToken  string
	refreshToken string
	scope        string
	idToken      string
	tokenType    string
	expiresIn    int
	expiresAt    int64
}

// CredentialsFromTokenResponse builds Credentials from a token endpoint
// response. ExpiresAt is computed once, here, as now + expires_in.
func CredentialsFromTokenResponse(m map[string]any) (*Credentials, error) {
	return credentialsFromTokenResponseAt(m, time.Now())
}

func credentialsFromTokenResponseAt(m map[string]any, now time.Time) (*Credentials, error) {
	c, err := parseCredentials(m, tokenResponseKeys)
	if err != nil {
		return nil, err
	}
	c.expiresAt = now.Unix() + int64(c.expiresIn)
	return c, nil
}

// CredentialsFromMap restores Credentials previously produced by ToMap.
// The stored expiresAt is kept as is.
func CredentialsFromMap(m map[string]any) (*Credentials, error) {
	c, err := parseCredentials(m, storedKeys)
	if err != nil {
		return nil, err
	}
	if c.expiresAt, err = wire.RequireInt64(m, "expiresAt"); err != nil {
		return nil, err
	}
	return c, nil
}

// CredentialsFromJSON restores Credentials from the output of MarshalJSON.
func CredentialsFromJSON(data []byte) (*Credentials, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return CredentialsFromMap(m)
}

type credentialKeys struct {
	accessToken, refreshToken, scope, idToken, tokenType, expiresIn string
}

var (
	tokenResponseKeys = credentialKeys{"access_token", "refresh_token", "scope", "id_token", "token_type", "expires_in"}
	storedKeys        = credentialKeys{"accessToken", "refreshToken", "scope", "idToken", "tokenType", "expiresIn"}
)

func parseCredentials(m map[string]any, k credentialKeys) (*Credentials, error) {
	var (
		c   Credentials
		err error
	)

	if c.accessToken, err = wire.RequireString(m, k.accessToken); err != nil {
		return nil, err
	}
	if c.refreshToken, err = wire.RequireString(m, k.refreshToken); err != nil {
		return nil, err
	}
	if c.scope, err = wire.RequireString(m, k.scope); err != nil {
		return nil, err
	}
	if c.idToken, err = wire.RequireString(m, k.idToken); err != nil {
		return nil, err
	}
	if c.tokenType, err = wire.RequireString(m, k.tokenType); err != nil {
		return nil, err
	}
	if c.expiresIn, err = wire.RequireInt(m, k.expiresIn); err != nil {
		return nil, err
	}
	if c.expiresIn < 0 {
		return nil, wire.Invalid(k.expiresIn, "must not be negative")
	}

	return &c, nil
}

// AccessToken returns the bearer token sent on authorized requests.
func (c *Credentials) AccessToken() string { return c.accessToken }

// RefreshToken returns the refresh token.
func (c *Credentials) RefreshToken() string { return c.refreshToken }

func (c *Credentials) Scope() string   { return c.scope }
func (c *Credentials) IDToken() string { return c.idToken }

// TokenType returns the token type, usually "Bearer".
func (c *Credentials) TokenType() string { return c.tokenType }

// ExpiresIn returns the lifetime in seconds as issued.
func (c *Credentials) ExpiresIn() int { return c.expiresIn }

// ExpiresAt returns the expiry as unix seconds.
func (c *Credentials) ExpiresAt() int64 { return c.expiresAt }

// Expired reports whether the access token has expired at now. Refreshing is
// left to the caller.
func (c *Credentials) Expired(now time.Time) bool {
	return now.Unix() >= c.expiresAt
}

// ToMap returns the stored form accepted by CredentialsFromMap.
func (c *Credentials) ToMap() map[string]any {
	return map[string]any{
		"accessToken":  c.accessToken,
		"refreshToken": c.refreshToken,
		"scope":        c.scope,
		"idToken":      c.idToken,
		"tokenType":    c.tokenType,
		"expiresIn":    c.expiresIn,
		"expiresAt":    c.expiresAt,
	}
}

// MarshalJSON implements json.Marshaler using the ToMap form.
func (c *Credentials) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToMap())
}

// IDTokenClaims decodes the id_token claims. The signature is not verified.
func (c *Credentials) IDTokenClaims() (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.idToken, claims); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return claims, nil
}

// Subject returns the sub claim of the id_token, which is the user UUID.
func (c *Credentials) Subject() (string, error) {
	claims, err := c.IDTokenClaims()
	if err != nil {
		return "", err
	}
	return claims.GetSubject()
}

// LogValue implements slog.LogValuer. Token values are never logged.
func (c *Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("token_type", c.tokenType),
		slog.String("scope", c.scope),
		slog.Int64("expires_at", c.expiresAt),
	)
}
