package addrfmt

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// KeyValue is a single raw field of an address record, as read from a data
// source that may use non-canonical field names.
type KeyValue struct {
	Key   string
	Value string
}

// Address holds one optional value per Component. An empty string means the
// component is absent. The zero value is an empty address.
//
// Address is a value type: copying it copies every field, which is how the
// formatter gets its per-call working copy.
type Address struct {
	values [numComponents]string
}

// NewAddress builds an address from canonical component values.
func NewAddress(values map[Component]string) Address {
	var a Address
	for c, v := range values {
		a.Set(c, v)
	}
	return a
}

// Get returns the value of c, or "" when absent.
func (a *Address) Get(c Component) string {
	if c < 0 || c >= numComponents {
		return ""
	}
	return a.values[c]
}

// Has reports whether c holds a non-empty value.
func (a *Address) Has(c Component) bool {
	return a.Get(c) != ""
}

// Set assigns v to c. Setting "" is the same as Unset.
func (a *Address) Set(c Component, v string) {
	if c < 0 || c >= numComponents {
		return
	}
	a.values[c] = v
}

// Unset clears c.
func (a *Address) Unset(c Component) {
	a.Set(c, "")
}

// IsEmpty reports whether no component is set.
func (a *Address) IsEmpty() bool {
	for _, v := range a.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Each calls fn for every present component in declaration order.
func (a *Address) Each(fn func(Component, string)) {
	for c, v := range a.values {
		if v != "" {
			fn(Component(c), v)
		}
	}
}

// Pairs returns the present components as name/value pairs in declaration
// order.
func (a Address) Pairs() []KeyValue {
	var out []KeyValue
	a.Each(func(c Component, v string) {
		out = append(out, KeyValue{Key: c.String(), Value: v})
	})
	return out
}

// context returns the render context handed to the template engine.
func (a *Address) context() map[string]string {
	ctx := make(map[string]string, numComponents)
	a.Each(func(c Component, v string) {
		ctx[c.String()] = v
	})
	return ctx
}

// MarshalJSON encodes the present components as an object in declaration
// order.
func (a Address) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range a.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the present components as a mapping in declaration
// order.
func (a Address) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range a.Pairs() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}
	return node, nil
}
