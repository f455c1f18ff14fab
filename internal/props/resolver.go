// Package props resolves typed configuration values across the
// registered property sources, honoring source precedence.
package props

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eco2-team/backend/domains/env-report/internal/envsource"
)

// Environment is the view of the registry a resolver needs.
type Environment interface {
	Snapshot() []envsource.Source
}

// NotFoundError is returned when a key exists in no source and no
// default was supplied.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("property %q not found in any source", e.Key)
}

// Resolver looks up properties across sources. Sources with a higher
// order take precedence: a key defined by both the application file
// and the process environment resolves to the environment's value.
type Resolver struct {
	env Environment

	// name substitutes the "*" placeholder in key templates, so one
	// resolver definition can serve several named configurations.
	name string
}

func NewResolver(env Environment) *Resolver {
	return &Resolver{env: env}
}

// Named returns a resolver that expands "*" in keys to the given name.
func (r *Resolver) Named(name string) *Resolver {
	return &Resolver{env: r.env, name: name}
}

// Lookup returns the raw value for key and whether any source holds it.
// Source read errors are treated as absence here; use Get for the
// error-propagating variant.
func (r *Resolver) Lookup(key string) (any, bool) {
	v, err := r.Get(key)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Get returns the raw value for key. A key held by no source yields a
// *NotFoundError; a failing source read is propagated as-is.
func (r *Resolver) Get(key string) (any, error) {
	key = r.expand(key)

	sources := r.env.Snapshot()
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Order() > sources[j].Order()
	})

	for _, source := range sources {
		if !containsKey(source, key) {
			continue
		}
		return source.Get(key)
	}
	return nil, &NotFoundError{Key: key}
}

// GetString resolves key as a string.
func (r *Resolver) GetString(key string) (string, error) {
	v, err := r.Get(key)
	if err != nil {
		return "", err
	}
	return toString(v), nil
}

// StringOr resolves key as a string, falling back to def.
func (r *Resolver) StringOr(key, def string) string {
	s, err := r.GetString(key)
	if err != nil {
		return def
	}
	return s
}

// GetInt resolves key as an int.
func (r *Resolver) GetInt(key string) (int, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	n, err := strconv.Atoi(toString(v))
	if err != nil {
		return 0, fmt.Errorf("property %q is not an int: %w", r.expand(key), err)
	}
	return n, nil
}

// IntOr resolves key as an int, falling back to def.
func (r *Resolver) IntOr(key string, def int) int {
	n, err := r.GetInt(key)
	if err != nil {
		return def
	}
	return n
}

// GetBool resolves key as a bool.
func (r *Resolver) GetBool(key string) (bool, error) {
	v, err := r.Get(key)
	if err != nil {
		return false, err
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	b, err := strconv.ParseBool(toString(v))
	if err != nil {
		return false, fmt.Errorf("property %q is not a bool: %w", r.expand(key), err)
	}
	return b, nil
}

// BoolOr resolves key as a bool, falling back to def.
func (r *Resolver) BoolOr(key string, def bool) bool {
	b, err := r.GetBool(key)
	if err != nil {
		return def
	}
	return b
}

// GetFloat resolves key as a float64.
func (r *Resolver) GetFloat(key string) (float64, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	switch f := v.(type) {
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	}
	f, err := strconv.ParseFloat(toString(v), 64)
	if err != nil {
		return 0, fmt.Errorf("property %q is not a float: %w", r.expand(key), err)
	}
	return f, nil
}

// GetDuration resolves key as a time.Duration ("250ms", "2s").
func (r *Resolver) GetDuration(key string) (time.Duration, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(toString(v))
	if err != nil {
		return 0, fmt.Errorf("property %q is not a duration: %w", r.expand(key), err)
	}
	return d, nil
}

// DurationOr resolves key as a duration, falling back to def.
func (r *Resolver) DurationOr(key string, def time.Duration) time.Duration {
	d, err := r.GetDuration(key)
	if err != nil {
		return def
	}
	return d
}

// GetStrings resolves key as a comma-separated string list.
func (r *Resolver) GetStrings(key string) ([]string, error) {
	s, err := r.GetString(key)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Resolver) expand(key string) string {
	if r.name != "" {
		return strings.ReplaceAll(key, "*", r.name)
	}
	return key
}

func containsKey(source envsource.Source, key string) bool {
	for _, k := range source.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
