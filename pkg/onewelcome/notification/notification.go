package notification

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
)

// Notification is one page of events.
type Notification struct {
	page   int
	size   int
	events EventCollection
}

// ParseNotification requires page, size and results.
func ParseNotification(m map[string]any) (*Notification, error) {
	var (
		n   Notification
		err error
	)
	if n.page, err = wire.RequireInt(m, "page"); err != nil {
		return nil, err
	}
	if n.size, err = wire.RequireInt(m, "size"); err != nil {
		return nil, err
	}

	results, err := wire.RequireList(m, "results")
	if err != nil {
		return nil, err
	}
	if n.events, err = ParseEventCollection(results); err != nil {
		return nil, wire.Within("results", err)
	}
	return &n, nil
}

// Page returns the page number as sent by the API.
func (n *Notification) Page() int { return n.page }

// Size returns the page size as sent by the API.
func (n *Notification) Size() int { return n.size }

// Events returns a copy of the page's events.
func (n *Notification) Events() EventCollection {
	return EventCollection{n.events.Clone()}
}

// MarshalJSON encodes the page with events in their stored form.
func (n *Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"page":    n.page,
		"size":    n.size,
		"results": n.events.ToMap(),
	})
}

// Client reads notification pages.
type Client struct {
	api   onewelcome.Executor
	creds *onewelcome.Credentials
	url   string
}

// NewClient returns a Client. subscriptionURL is a template whose %s is
// replaced by the subscription id.
func NewClient(api onewelcome.Executor, creds *onewelcome.Credentials, subscriptionURL string) *Client {
	return &Client{api: api, creds: creds, url: subscriptionURL}
}

// GetNotificationBySubscriptionID fetches the current page of a subscription.
func (c *Client) GetNotificationBySubscriptionID(ctx context.Context, subscriptionID string) (*Notification, error) {
	payload, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodGet,
		URL:    onewelcome.ExpandURL(c.url, subscriptionID),
	})
	if err != nil {
		return nil, err
	}

	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}
	return ParseNotification(obj)
}
