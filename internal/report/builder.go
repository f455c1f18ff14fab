package report

import (
	"sort"

	"github.com/eco2-team/backend/domains/env-report/internal/constants"
	"github.com/eco2-team/backend/domains/env-report/internal/envsource"
	"github.com/eco2-team/backend/domains/env-report/internal/filter"
)

// Environment is the view of the registry a report build needs.
// Snapshot must return a stable copy; builds never mutate it.
type Environment interface {
	Snapshot() []envsource.Source
	ActiveEnvironments() []string
	Packages() []string
}

// BuildFullReport walks every property source in order and classifies
// every key through the given filter specification.
func BuildFullReport(env Environment, spec *filter.Spec) (*EnvironmentReport, error) {
	sources := env.Snapshot()
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Order() < sources[j].Order()
	})

	entries := make([]*SourceEntry, 0, len(sources))
	for _, source := range sources {
		entry, err := buildSourceEntry(source, spec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return &EnvironmentReport{
		ActiveEnvironments: nonNil(env.ActiveEnvironments()),
		Packages:           nonNil(env.Packages()),
		PropertySources:    entries,
	}, nil
}

// nonNil keeps absent metadata rendering as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// BuildSourceReport reports the first source whose name equals
// sourceName. A missing source is a normal outcome: (nil, nil).
func BuildSourceReport(env Environment, sourceName string, spec *filter.Spec) (*SourceEntry, error) {
	for _, source := range env.Snapshot() {
		if source.Name() == sourceName {
			return buildSourceEntry(source, spec)
		}
	}
	return nil, nil
}

func buildSourceEntry(source envsource.Source, spec *filter.Spec) (*SourceEntry, error) {
	properties := NewProperties()
	for _, key := range source.Keys() {
		switch spec.Classify(key) {
		case filter.Hide:
			// omitted entirely
		case filter.Mask:
			properties.Set(key, constants.MaskValue)
		case filter.Plain:
			value, err := source.Get(key)
			if err != nil {
				return nil, err
			}
			properties.Set(key, value)
		}
	}

	return &SourceEntry{
		Name:       source.Name(),
		Order:      source.Order(),
		Convention: string(source.Convention()),
		Properties: properties,
	}, nil
}
