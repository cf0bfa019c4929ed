package model

import (
	"strings"

	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// DataRow is a partial record produced by selection extraction. Keys keep the
// order in which they were first added.
type DataRow struct {
	keys   []string
	values map[string]any
}

// NewDataRow builds a row from alternating key/value pairs.
func NewDataRow(kv ...any) DataRow {
	var r DataRow
	for i := 0; i+1 < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			continue
		}
		r.Set(k, kv[i+1])
	}
	return r
}

// Set stores a value. The first Set of a key fixes its position and value;
// later calls for the same key are ignored.
func (r *DataRow) Set(key string, value any) bool {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; exists {
		return false
	}
	r.keys = append(r.keys, key)
	r.values[key] = value
	return true
}

// Get returns the value stored under key.
func (r DataRow) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r DataRow) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (r DataRow) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r DataRow) Len() int { return len(r.keys) }

// Map returns an unordered copy of the row.
func (r DataRow) Map() map[string]any {
	out := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k]
	}
	return out
}

// sjson treats these as path syntax.
var sjsonPathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
	`:`, `\:`,
)

// MarshalJSON encodes the row as an object with keys in insertion order.
func (r DataRow) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	var err error
	for _, k := range r.keys {
		out, err = sjson.SetBytes(out, sjsonPathEscaper.Replace(k), r.values[k])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MarshalYAML encodes the row as a mapping with keys in insertion order.
func (r DataRow) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range r.keys {
		var val yaml.Node
		if err := val.Encode(r.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}
