package view

import (
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/darksworm/gridsel/pkg/model"
)

// LoadJSON reads an array of objects. It also returns one column per field in
// the order fields are first seen, which is the natural default column order.
func LoadJSON(data []byte) ([]model.Record, []model.Column, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("invalid JSON input")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, nil, fmt.Errorf("expected a JSON array of objects")
	}

	var (
		records []model.Record
		fields  []string
		seen    = make(map[string]bool)
		err     error
	)
	root.ForEach(func(i, item gjson.Result) bool {
		if !item.IsObject() {
			err = fmt.Errorf("item %d is not an object", len(records))
			return false
		}
		rec := make(model.Record)
		item.ForEach(func(k, v gjson.Result) bool {
			name := k.String()
			rec[name] = v.Value()
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
			return true
		})
		records = append(records, rec)
		return true
	})
	if err != nil {
		return nil, nil, err
	}
	return records, columnsFor(fields), nil
}

// LoadYAML reads a YAML sequence of mappings, returning columns in first-seen
// field order like LoadJSON.
func LoadYAML(data []byte) ([]model.Record, []model.Column, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil, nil
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, nil, fmt.Errorf("expected a YAML sequence of mappings")
	}

	var (
		records []model.Record
		fields  []string
		seen    = make(map[string]bool)
	)
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, nil, fmt.Errorf("item %d is not a mapping", i)
		}
		var rec model.Record
		if err := item.Decode(&rec); err != nil {
			return nil, nil, fmt.Errorf("item %d: %w", i, err)
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			name := item.Content[j].Value
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
		records = append(records, rec)
	}
	return records, columnsFor(fields), nil
}

func columnsFor(fields []string) []model.Column {
	cols := make([]model.Column, len(fields))
	for i, f := range fields {
		cols[i] = model.Column{Field: f, Header: f}
	}
	return cols
}
