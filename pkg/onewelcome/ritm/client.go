package ritm

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/sellvation/onewelcome/pkg/onewelcome"
	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
	"github.com/sellvation/onewelcome/pkg/onewelcome/lifecycle"
)

// Endpoints are the RITM URL templates. A %s is replaced by the user UUID.
type Endpoints struct {
	// Get fetches a profile, e.g. ".../ritm/users?filter=uid%20eq%20%22%s%22".
	Get string

	// Save receives profile and state updates.
	Save string
}

// Client reads and updates RITM profiles.
type Client struct {
	api       onewelcome.Executor
	creds     *onewelcome.Credentials
	endpoints Endpoints
	schema    Schema
}

// NewClient returns a Client bound to creds.
func NewClient(api onewelcome.Executor, creds *onewelcome.Credentials, endpoints Endpoints, schema Schema) *Client {
	return &Client{api: api, creds: creds, endpoints: endpoints, schema: schema}
}

// GetUserByUUID fetches one profile. It returns nil and no error when the
// result set is empty.
func (c *Client) GetUserByUUID(ctx context.Context, uuid string) (*User, error) {
	payload, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodGet,
		URL:    onewelcome.ExpandURL(c.endpoints.Get, uuid),
	})
	if err != nil {
		return nil, err
	}
	return c.firstResult(payload)
}

// SaveUser sends u as a partial update and returns the profile the API
// echoes back. When the API answers without a body, u itself is returned.
func (c *Client) SaveUser(ctx context.Context, u *User) (*User, error) {
	body := u.ToWireFormat()
	body["uid"] = u.UUID()

	payload, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodPatch,
		URL:    onewelcome.ExpandURL(c.endpoints.Save, u.UUID()),
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	if payload.IsEmpty() {
		return u, nil
	}

	saved, err := c.firstResult(payload)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return u, nil
	}
	return saved, nil
}

// SaveStateForUserUUID sets the lifecycle state of a profile together with
// its last activity date. Only ACTIVE, GRACE and INACTIVE are accepted. It
// reports whether the response carries a truthy state in the iwelcome block
// at its top level.
func (c *Client) SaveStateForUserUUID(ctx context.Context, uuid, state, lastActivity string) (bool, error) {
	if err := lifecycle.ValidateEventState(state); err != nil {
		return false, wire.Invalid("state", err.Error())
	}

	payload, err := c.api.ExecuteWithAuthorization(ctx, c.creds, onewelcome.Request{
		Method: http.MethodPatch,
		URL:    onewelcome.ExpandURL(c.endpoints.Save, uuid),
		Body: map[string]any{
			"profileInformation": map[string]any{
				ExtIWelcome: map[string]any{"state": state},
				ExtPlus:     map[string]any{"LastActivityDate": lastActivity},
			},
		},
	})
	if err != nil {
		return false, err
	}

	return truthy(payload.Get(onewelcome.PathKey(ExtIWelcome) + ".state")), nil
}

func (c *Client) firstResult(payload *onewelcome.Payload) (*User, error) {
	obj, err := payload.Object()
	if err != nil {
		return nil, err
	}
	result, err := wire.RequireList(obj, "result")
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, nil
	}

	first, ok := result[0].(map[string]any)
	if !ok {
		return nil, wire.Invalid("result[0]", "expected an object")
	}
	u, err := ParseUser(first, c.schema)
	if err != nil {
		return nil, wire.Within("result[0]", err)
	}
	return u, nil
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.String:
		return r.Str != "" && r.Str != "0"
	case gjson.Number:
		return r.Num != 0
	case gjson.JSON:
		return r.Raw != "[]" && r.Raw != "{}"
	}
	return false
}
