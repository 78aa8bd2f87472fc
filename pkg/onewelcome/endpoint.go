package onewelcome

import (
	"context"
	"net/url"
	"strings"
)

// Executor runs authorized requests. *APIClient implements it; the domain
// clients depend on this interface only.
type Executor interface {
	ExecuteWithAuthorization(ctx context.Context, creds *Credentials, req Request) (*Payload, error)
}

var _ Executor = (*APIClient)(nil)

// ExpandURL substitutes param, path escaped, for the first %s in template.
// Other percent sequences, such as an encoded query, are left alone.
func ExpandURL(template, param string) string {
	return strings.Replace(template, "%s", url.PathEscape(param), 1)
}

// PathKey escapes the dots in a vendor key such as
// "urn:scim:schemas:extension:iwelcome:1.0" for use in a Payload.Get path.
func PathKey(key string) string {
	return strings.ReplaceAll(key, ".", `\.`)
}
