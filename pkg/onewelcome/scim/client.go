package scim

import (
	"context"
	"net/http"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
)

// Client reads SCIM users.
type Client struct {
	api   onewelcome.Executor
	creds *onewelcome.Credentials
	url   string
}

// NewClient returns a Client. userURL is a template whose %s is replaced by
// the user id.
func NewClient(api onewelcome.Executor, creds *onewelcome.Credentials, userURL string) *Client {
	return &Client{api: api, creds: creds, url: userURL}
}

// GetUserByID fetches a SCIM user.
func (c *Client) GetUserByID(ctx context.Context, id string) (*User, error) {
	payload, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodGet,
		URL:    onewelcome.ExpandURL(c.url, id),
	})
	if err != nil {
		return nil, err
	}

	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}
	return ParseUser(obj)
}
