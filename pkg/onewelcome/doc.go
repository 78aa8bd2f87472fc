/*
Package onewelcome is a client for the OneWelcome identity management API.

# Overview

The package is split in two layers. The core package holds the request layer
(APIClient), token acquisition, Credentials and the error types. The
subpackages map the vendor's JSON formats onto typed values and expose one
thin client per subsystem:

  - ritm: customer profiles with tenant specific extension blocks
  - scim: the narrower SCIM view of a user
  - consent: attribute consents
  - notification: paged lifecycle events

# Authentication

Credentials are obtained with a password grant and passed explicitly to each
domain client:

	api := onewelcome.NewAPIClient(onewelcome.WithLogger(logger))

	creds, err := api.ObtainCredentials(ctx, onewelcome.TokenConfig{
		URL:          "https://tenant.onewelcome.io/oauth/token",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        "openid profile",
		Username:     username,
		Password:     password,
	})

Tokens are never refreshed automatically. Use Credentials.Expired to decide
when to request new ones.

# Domain Clients

	profiles := ritm.NewClient(api, creds, ritm.Endpoints{
		Get:  "https://tenant.onewelcome.io/ritm/users?filter=uid%20eq%20%22%s%22",
		Save: "https://tenant.onewelcome.io/ritm/users/%s",
	}, ritm.Schema{CustomerTag: "urn:scim:schemas:extension:plus:1.0", CustomerKey: "CustomerId"})

	user, err := profiles.GetUserByUUID(ctx, uuid)
	if user == nil && err == nil {
		// not found
	}

# Error Handling

All failures are typed and can be matched with errors.As:

  - *ValidationError: a required key is missing or malformed
  - *APIError: the API answered with a status other than 200, 201 or 204
  - *TransportError: the request did not complete
  - *SerializationError: JSON that must be well formed is not
  - *TokenAcquisitionError: the token exchange failed
  - *UnexpectedResponseError: a successful response has an unusable body

Nothing is retried. Secrets never appear in error messages or log records.
*/
package onewelcome
