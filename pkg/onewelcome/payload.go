package onewelcome

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Payload is a decoded JSON response body. An empty body decodes to an empty
// object.
type Payload struct {
	raw   []byte
	value any
}

// decodePayload decodes body, keeping numbers as json.Number so large
// identifiers survive unchanged.
func decodePayload(body []byte) (*Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return &Payload{value: map[string]any{}}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &SerializationError{Err: err}
	}
	if dec.More() {
		return nil, &SerializationError{Err: fmt.Errorf("trailing data after JSON value")}
	}

	return &Payload{raw: body, value: v}, nil
}

// IsEmpty reports whether the response had no body.
func (p *Payload) IsEmpty() bool {
	return len(p.raw) == 0
}

// Raw returns the undecoded body.
func (p *Payload) Raw() []byte {
	return p.raw
}

// Value returns the decoded body.
func (p *Payload) Value() any {
	return p.value
}

// Object returns the body as a JSON object.
func (p *Payload) Object() (map[string]any, error) {
	obj, ok := p.value.(map[string]any)
	if !ok {
		return nil, &UnexpectedResponseError{Reason: fmt.Sprintf("expected a JSON object, got %s", kindOf(p.value))}
	}
	return obj, nil
}

// List returns the body as a JSON array.
func (p *Payload) List() ([]any, error) {
	list, ok := p.value.([]any)
	if !ok {
		return nil, &UnexpectedResponseError{Reason: fmt.Sprintf("expected a JSON array, got %s", kindOf(p.value))}
	}
	return list, nil
}

// Get looks up a gjson path in the raw body. Dots inside vendor keys must be
// escaped, e.g. `urn:scim:schemas:extension:iwelcome:1\.0.state`.
func (p *Payload) Get(path string) gjson.Result {
	return gjson.GetBytes(p.raw, path)
}

func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
