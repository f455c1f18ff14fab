// Package envsource models the application environment as a set of
// named, ordered property sources contributing configuration keys.
package envsource

import (
	"fmt"
	"sync"
)

// Convention tags the naming style of a source's keys.
type Convention string

const (
	// ConventionEnvVar is upper-snake naming (DATABASE_URL).
	ConventionEnvVar Convention = "ENVIRONMENT_VARIABLE"
	// ConventionDotted is lower dotted naming (database.url).
	ConventionDotted Convention = "DOTTED_PROPERTY"
)

// Default orders per source kind. Lower orders appear first in
// reports; higher orders take precedence during property resolution.
const (
	OrderApplicationFile = 0
	OrderDotenv          = 100
	OrderEnvironment     = 200
	OrderRemote          = 300
)

// Source is a named, ordered collection of configuration keys.
// Keys returns the source's native iteration order; Get may fail for
// sources backed by external systems.
type Source interface {
	Name() string
	Order() int
	Convention() Convention
	Keys() []string
	Get(key string) (any, error)
}

// MapSource is an in-memory Source preserving insertion order.
// It backs file-based sources and is handy in tests.
type MapSource struct {
	name       string
	order      int
	convention Convention
	keys       []string
	values     map[string]any
}

func NewMapSource(name string, order int, convention Convention) *MapSource {
	return &MapSource{
		name:       name,
		order:      order,
		convention: convention,
		values:     make(map[string]any),
	}
}

// Set adds or replaces a key. First insertion fixes the key's position.
func (s *MapSource) Set(key string, value any) *MapSource {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return s
}

func (s *MapSource) Name() string           { return s.name }
func (s *MapSource) Order() int             { return s.order }
func (s *MapSource) Convention() Convention { return s.convention }

func (s *MapSource) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

func (s *MapSource) Get(key string) (any, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("property %q not present in source %q", key, s.name)
	}
	return v, nil
}

// Registry is the environment: an ordered collection of sources plus
// the metadata reported alongside them. Sources may be added or
// replaced while reports are being built; readers work on snapshots.
type Registry struct {
	mu                 sync.RWMutex
	sources            []Source
	activeEnvironments []string
	packages           []string
}

func NewRegistry(activeEnvironments, packages []string) *Registry {
	return &Registry{
		activeEnvironments: activeEnvironments,
		packages:           packages,
	}
}

// Add appends sources to the registry.
func (r *Registry) Add(sources ...Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, sources...)
}

// Snapshot returns a stable copy of the current sources. Report builds
// iterate the copy so concurrent Add calls cannot skew a report.
func (r *Registry) Snapshot() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sources := make([]Source, len(r.sources))
	copy(sources, r.sources)
	return sources
}

// ActiveEnvironments returns the active environment names verbatim.
func (r *Registry) ActiveEnvironments() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.activeEnvironments))
	copy(names, r.activeEnvironments)
	return names
}

// Packages returns the configured package list verbatim.
func (r *Registry) Packages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	packages := make([]string, len(r.packages))
	copy(packages, r.packages)
	return packages
}
