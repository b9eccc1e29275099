// attrs.go decodes the JSON attribute blob carried by openers and voids.
package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Attribute is one top-level attribute with its value kept as raw JSON.
type Attribute struct {
	Key   string
	Value json.RawMessage
}

// Attributes holds block attributes in the order they were written.
// A nil Attributes means decoding failed; an empty one means none were given.
type Attributes []Attribute

// ParseAttributes strictly decodes raw as a single JSON object.
func ParseAttributes(raw string) (Attributes, error) {
	dec := json.NewDecoder(strings.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("attributes must be a JSON object")
	}

	attrs := Attributes{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected attribute name, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		attrs.setRaw(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected data after attributes")
		}
		return nil, err
	}

	return attrs, nil
}

// parseAttributesAt decodes the blob at span and wraps failures in *JSONError.
func parseAttributesAt(doc string, span Span) (Attributes, error) {
	attrs, err := ParseAttributes(span.Text(doc))
	if err != nil {
		return nil, &JSONError{Span: span, Err: err}
	}
	return attrs, nil
}

// Get returns the raw value stored under key.
func (a Attributes) Get(key string) (json.RawMessage, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// Decode unmarshals the value stored under key into v.
func (a Attributes) Decode(key string, v any) error {
	raw, ok := a.Get(key)
	if !ok {
		return fmt.Errorf("attribute %q not set", key)
	}
	return json.Unmarshal(raw, v)
}

// Map decodes every attribute into a plain map.
func (a Attributes) Map() (map[string]any, error) {
	m := make(map[string]any, len(a))
	for _, attr := range a {
		var v any
		if err := json.Unmarshal(attr.Value, &v); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
		m[attr.Key] = v
	}
	return m, nil
}

// Set encodes v and stores it under key, keeping the key's position if it
// was already present.
func (a *Attributes) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("attribute %q: %w", key, err)
	}
	a.setRaw(key, raw)
	return nil
}

func (a *Attributes) setRaw(key string, raw json.RawMessage) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = raw
			return
		}
	}
	*a = append(*a, Attribute{Key: key, Value: raw})
}

// MarshalJSON writes the attributes as a compact object in their original order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, attr.Value); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the attributes as they are written inside a delimiter.
// A literal "--" would end the surrounding comment, so it is escaped.
func (a Attributes) String() string {
	data, err := a.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return strings.ReplaceAll(string(data), "--", `\u002d\u002d`)
}
