// Package report assembles environment reports: every property source,
// every key, filtered through the per-request masking policy.
package report

import (
	"bytes"
	"encoding/json"
)

// Properties is a key/value mapping that marshals to JSON in insertion
// order, matching each source's own key iteration order.
type Properties struct {
	keys   []string
	values map[string]any
}

func NewProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// Set adds or replaces a key. First insertion fixes the key's position.
func (p *Properties) Set(key string, value any) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present.
func (p *Properties) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// MarshalJSON emits the mapping as a JSON object in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SourceEntry is the report of a single property source.
type SourceEntry struct {
	Name       string      `json:"name"`
	Order      int         `json:"order"`
	Convention string      `json:"convention"`
	Properties *Properties `json:"properties"`
}

// EnvironmentReport is the full report returned by the env endpoint.
type EnvironmentReport struct {
	ActiveEnvironments []string       `json:"activeEnvironments"`
	Packages           []string       `json:"packages"`
	PropertySources    []*SourceEntry `json:"propertySources"`
}
