package consent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
)

type captured struct {
	method string
	path   string
	body   map[string]any
}

func newConsentServer(t *testing.T, status int, response string) (*Client, *captured) {
	t.Helper()

	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &c.body)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	creds, err := onewelcome.CredentialsFromTokenResponse(map[string]any{
		"access_token": "tok", "refresh_token": "r", "scope": "s",
		"id_token": "i", "token_type": "Bearer", "expires_in": 60,
	})
	require.NoError(t, err)

	return NewClient(onewelcome.NewAPIClient(), creds, srv.URL+"/consent"), c
}

func TestCreateConsent(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored consent", func(t *testing.T) {
		t.Parallel()

		client, got := newConsentServer(t, http.StatusOK, `{
			"id": "c-99",
			"userId": "u-1",
			"processingPurposeId": "newsletter",
			"attribute": {"name": "newsletter"},
			"consent": {"dateConsented": "2024-04-05T06:07:08Z", "locale": "nl_NL"}
		}`)

		ac, err := client.CreateConsent(context.Background(), "u-1", "newsletter", "")
		require.NoError(t, err)
		require.Equal(t, "c-99", *ac.ID())

		require.Equal(t, http.MethodPost, got.method)
		require.Equal(t, "/consent/attribute-consents/", got.path)
		require.Equal(t, map[string]any{
			"userId":              "u-1",
			"processingPurposeId": "newsletter",
			"attribute":           map[string]any{"name": "newsletter"},
			"consent":             map[string]any{"locale": "nl_NL"},
		}, got.body)
	})

	t.Run("explicit locale", func(t *testing.T) {
		t.Parallel()

		client, got := newConsentServer(t, http.StatusCreated, `{
			"userId": "u-1", "processingPurposeId": "p", "attribute": {"name": "p"},
			"consent": {"dateConsented": "now", "locale": "en_GB"}
		}`)

		_, err := client.CreateConsent(context.Background(), "u-1", "p", "en_GB")
		require.NoError(t, err)
		require.Equal(t, "en_GB", got.body["consent"].(map[string]any)["locale"])
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		client, _ := newConsentServer(t, http.StatusBadRequest, `{"message":"unknown processing purpose"}`)
		ac, err := client.CreateConsent(context.Background(), "u-1", "nope", "")
		require.Nil(t, ac)

		var apiErr *onewelcome.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})
}

func TestGetConsentsByUserID(t *testing.T) {
	t.Parallel()

	client, got := newConsentServer(t, http.StatusOK, `[
		{"id":"c-1","userId":"u-1","processingPurposeId":"a","attribute":{"name":"a"},"consent":{"dateConsented":"d","locale":"nl_NL"}},
		{"id":"c-2","userId":"u-1","processingPurposeId":"b","attribute":{"name":"b"},"consent":{"dateConsented":"d","locale":"nl_NL"}}
	]`)

	consents, err := client.GetConsentsByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, 2, consents.Len())
	require.Equal(t, http.MethodGet, got.method)
	require.Equal(t, "/consent/attribute-consents/users/u-1", got.path)

	client, _ = newConsentServer(t, http.StatusOK, `{"not":"a list"}`)
	_, err = client.GetConsentsByUserID(context.Background(), "u-1")
	var unexpected *onewelcome.UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)

	for _, status := range []int{http.StatusNoContent, http.StatusOK} {
		t.Run(http.StatusText(status)+" without body", func(t *testing.T) {
			t.Parallel()

			client, _ := newConsentServer(t, status, "")
			consents, err := client.GetConsentsByUserID(context.Background(), "u-1")
			require.NoError(t, err)
			require.Zero(t, consents.Len())
			require.Empty(t, consents.ToMap())
		})
	}
}

func TestDeleteConsentByID(t *testing.T) {
	t.Parallel()

	client, got := newConsentServer(t, http.StatusNoContent, "")
	require.NoError(t, client.DeleteConsentByID(context.Background(), "c-1"))
	require.Equal(t, http.MethodDelete, got.method)
	require.Equal(t, "/consent/attribute-consents/c-1", got.path)

	client, _ = newConsentServer(t, http.StatusNotFound, "")
	err := client.DeleteConsentByID(context.Background(), "c-1")
	var apiErr *onewelcome.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
