package consent

import (
	"context"
	"net/http"
	"strings"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
)

// Client manages attribute consents.
type Client struct {
	api   onewelcome.Executor
	creds *onewelcome.Credentials
	base  string
}

// NewClient returns a Client for the consent API rooted at baseURL.
func NewClient(api onewelcome.Executor, creds *onewelcome.Credentials, baseURL string) *Client {
	return &Client{api: api, creds: creds, base: strings.TrimSuffix(baseURL, "/") + "/"}
}

// GetConsentsByUserID lists every attribute consent of a user.
func (c *Client) GetConsentsByUserID(ctx context.Context, userID string) (ConsentCollection, error) {
	payload, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodGet,
		URL:    onewelcome.ExpandURL(c.base+"attribute-consents/users/%s", userID),
	})
	if err != nil {
		return ConsentCollection{}, err
	}
	if payload.IsEmpty() {
		return ConsentCollection{}, nil
	}

	list, err := payload.List()
	if err != nil {
		return ConsentCollection{}, err
	}
	return ParseConsentCollection(list)
}

// DeleteConsentByID removes a consent.
func (c *Client) DeleteConsentByID(ctx context.Context, id string) error {
	_, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodDelete,
		URL:    onewelcome.ExpandURL(c.base+"attribute-consents/%s", id),
	})
	return err
}

// CreateConsent grants consent for the processing purpose name on the
// attribute of the same name. An empty locale means DefaultLocale.
func (c *Client) CreateConsent(ctx context.Context, userID, name, locale string) (*AttributeConsent, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	payload, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodPost,
		URL:    c.base + "attribute-consents/",
		Body: map[string]any{
			"userId":              userID,
			"processingPurposeId": name,
			"attribute":           map[string]any{"name": name},
			"consent":             map[string]any{"locale": locale},
		},
	})
	if err != nil {
		return nil, err
	}

	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}
	return ParseAttributeConsent(obj)
}
