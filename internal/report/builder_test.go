package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/eco2-team/backend/domains/env-report/internal/constants"
	"github.com/eco2-team/backend/domains/env-report/internal/envsource"
	"github.com/eco2-team/backend/domains/env-report/internal/filter"
)

type fakeEnv struct {
	sources  []envsource.Source
	active   []string
	packages []string
}

func (f *fakeEnv) Snapshot() []envsource.Source {
	sources := make([]envsource.Source, len(f.sources))
	copy(sources, f.sources)
	return sources
}

func (f *fakeEnv) ActiveEnvironments() []string { return f.active }
func (f *fakeEnv) Packages() []string           { return f.packages }

// failingSource reports one key whose Get always fails.
type failingSource struct{}

func (failingSource) Name() string                     { return "broken" }
func (failingSource) Order() int                       { return 0 }
func (failingSource) Convention() envsource.Convention { return envsource.ConventionDotted }
func (failingSource) Keys() []string                   { return []string{"some.key"} }
func (failingSource) Get(key string) (any, error)      { return nil, errors.New("gone") }

func maskNoneSpec(t *testing.T) *filter.Spec {
	t.Helper()
	return filter.New(nil).MaskNone()
}

func TestBuildFullReportSortsByOrder(t *testing.T) {
	env := &fakeEnv{
		sources: []envsource.Source{
			envsource.NewMapSource("third", 30, envsource.ConventionDotted),
			envsource.NewMapSource("first", 10, envsource.ConventionDotted),
			envsource.NewMapSource("second", 20, envsource.ConventionDotted),
		},
	}

	full, err := BuildFullReport(env, maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildFullReport error: %v", err)
	}

	got := make([]string, 0, len(full.PropertySources))
	for _, entry := range full.PropertySources {
		got = append(got, entry.Name)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("source order = %v, want %v", got, want)
		}
	}
}

func TestBuildFullReportStableSortOnTies(t *testing.T) {
	env := &fakeEnv{
		sources: []envsource.Source{
			envsource.NewMapSource("a", 10, envsource.ConventionDotted),
			envsource.NewMapSource("b", 10, envsource.ConventionDotted),
			envsource.NewMapSource("c", 5, envsource.ConventionDotted),
		},
	}

	full, err := BuildFullReport(env, maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildFullReport error: %v", err)
	}

	if full.PropertySources[0].Name != "c" ||
		full.PropertySources[1].Name != "a" ||
		full.PropertySources[2].Name != "b" {
		t.Errorf("equal orders must preserve input order, got %s, %s, %s",
			full.PropertySources[0].Name, full.PropertySources[1].Name, full.PropertySources[2].Name)
	}
}

func TestBuildFullReportEmptyEnvironment(t *testing.T) {
	env := &fakeEnv{active: []string{"dev"}, packages: []string{"internal"}}

	full, err := BuildFullReport(env, maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildFullReport error: %v", err)
	}
	if len(full.PropertySources) != 0 {
		t.Errorf("expected no property sources, got %d", len(full.PropertySources))
	}
	if len(full.ActiveEnvironments) != 1 || full.ActiveEnvironments[0] != "dev" {
		t.Errorf("active environments not passed through: %v", full.ActiveEnvironments)
	}
	if len(full.Packages) != 1 || full.Packages[0] != "internal" {
		t.Errorf("packages not passed through: %v", full.Packages)
	}
}

func TestBuildFullReportLegacyMasking(t *testing.T) {
	src := envsource.NewMapSource("env", 0, envsource.ConventionDotted).
		Set("api.token", "xyz").
		Set("server.port", "8080")
	env := &fakeEnv{sources: []envsource.Source{src}}

	full, err := BuildFullReport(env, filter.New(nil).LegacyMasking())
	if err != nil {
		t.Fatalf("BuildFullReport error: %v", err)
	}
	if len(full.PropertySources) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(full.PropertySources))
	}

	props := full.PropertySources[0].Properties
	if v, _ := props.Get("api.token"); v != constants.MaskValue {
		t.Errorf("api.token = %v, want %q", v, constants.MaskValue)
	}
	if v, _ := props.Get("server.port"); v != "8080" {
		t.Errorf("server.port = %v, want 8080", v)
	}
}

func TestBuildFullReportMaskAllDefault(t *testing.T) {
	src := envsource.NewMapSource("env", 0, envsource.ConventionEnvVar).
		Set("HOME", "/home/user").
		Set("DATABASE_PASSWORD", "hunter2")
	env := &fakeEnv{sources: []envsource.Source{src}}

	// Fresh spec, no configurer: everything masked.
	full, err := BuildFullReport(env, filter.New(nil))
	if err != nil {
		t.Fatalf("BuildFullReport error: %v", err)
	}

	props := full.PropertySources[0].Properties
	for _, key := range props.Keys() {
		if v, _ := props.Get(key); v != constants.MaskValue {
			t.Errorf("%s = %v, want masked", key, v)
		}
	}
	// Keys are still listed, only values are redacted.
	if props.Len() != 2 {
		t.Errorf("expected 2 keys, got %d", props.Len())
	}
}

func TestBuildFullReportPreservesKeyOrder(t *testing.T) {
	src := envsource.NewMapSource("app", 0, envsource.ConventionDotted).
		Set("zeta", 1).
		Set("alpha", 2).
		Set("mid", 3)
	env := &fakeEnv{sources: []envsource.Source{src}}

	full, err := BuildFullReport(env, maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildFullReport error: %v", err)
	}

	keys := full.PropertySources[0].Properties.Keys()
	want := []string{"zeta", "alpha", "mid"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key order = %v, want %v", keys, want)
		}
	}
}

func TestBuildFullReportPropagatesSourceError(t *testing.T) {
	env := &fakeEnv{sources: []envsource.Source{failingSource{}}}

	if _, err := BuildFullReport(env, maskNoneSpec(t)); err == nil {
		t.Fatal("expected source error to propagate")
	}
}

func TestBuildSourceReportFound(t *testing.T) {
	env := &fakeEnv{
		sources: []envsource.Source{
			envsource.NewMapSource("env", 0, envsource.ConventionEnvVar).Set("A", "1"),
			envsource.NewMapSource("app", 10, envsource.ConventionDotted).Set("b", "2"),
		},
	}

	entry, err := BuildSourceReport(env, "app", maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildSourceReport error: %v", err)
	}
	if entry == nil {
		t.Fatal("expected entry, got nil")
	}
	if entry.Name != "app" || entry.Order != 10 {
		t.Errorf("entry = %s/%d, want app/10", entry.Name, entry.Order)
	}
	if v, _ := entry.Properties.Get("b"); v != "2" {
		t.Errorf("b = %v, want 2", v)
	}
}

func TestBuildSourceReportNotFound(t *testing.T) {
	env := &fakeEnv{
		sources: []envsource.Source{
			envsource.NewMapSource("env", 0, envsource.ConventionEnvVar),
		},
	}

	entry, err := BuildSourceReport(env, "nope", maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildSourceReport error: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil for unknown source, got %+v", entry)
	}
}

func TestBuildSourceReportNameIsCaseSensitive(t *testing.T) {
	env := &fakeEnv{
		sources: []envsource.Source{
			envsource.NewMapSource("Env", 0, envsource.ConventionEnvVar),
		},
	}

	entry, err := BuildSourceReport(env, "env", maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildSourceReport error: %v", err)
	}
	if entry != nil {
		t.Error("source lookup must be case-sensitive")
	}
}

func TestBuildFullReportNilMetadataMarshalsAsArrays(t *testing.T) {
	env := &fakeEnv{}

	full, err := BuildFullReport(env, maskNoneSpec(t))
	if err != nil {
		t.Fatalf("BuildFullReport error: %v", err)
	}

	data, err := json.Marshal(full)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"activeEnvironments":[]`) {
		t.Errorf("activeEnvironments not an empty array: %s", body)
	}
	if !strings.Contains(body, `"packages":[]`) {
		t.Errorf("packages not an empty array: %s", body)
	}
}
