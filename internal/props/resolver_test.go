package props

import (
	"errors"
	"testing"
	"time"

	"github.com/eco2-team/backend/domains/env-report/internal/envsource"
)

type fakeEnv struct {
	sources []envsource.Source
}

func (f *fakeEnv) Snapshot() []envsource.Source {
	sources := make([]envsource.Source, len(f.sources))
	copy(sources, f.sources)
	return sources
}

func newTestEnv() *fakeEnv {
	app := envsource.NewMapSource("application", envsource.OrderApplicationFile, envsource.ConventionDotted).
		Set("server.port", 8080).
		Set("server.host", "localhost").
		Set("debug", false).
		Set("timeout", "250ms").
		Set("rate", 0.5).
		Set("origins", "a.example.com, b.example.com")

	env := envsource.NewMapSource("env", envsource.OrderEnvironment, envsource.ConventionDotted).
		Set("server.host", "0.0.0.0")

	return &fakeEnv{sources: []envsource.Source{app, env}}
}

func TestResolverPrecedence(t *testing.T) {
	r := NewResolver(newTestEnv())

	// env (higher order) overrides the application file.
	host, err := r.GetString("server.host")
	if err != nil {
		t.Fatalf("GetString error: %v", err)
	}
	if host != "0.0.0.0" {
		t.Errorf("server.host = %q, want 0.0.0.0", host)
	}

	// Keys only in the application file resolve from it.
	port, err := r.GetInt("server.port")
	if err != nil {
		t.Fatalf("GetInt error: %v", err)
	}
	if port != 8080 {
		t.Errorf("server.port = %d, want 8080", port)
	}
}

func TestResolverNotFound(t *testing.T) {
	r := NewResolver(newTestEnv())

	_, err := r.Get("missing.key")
	if err == nil {
		t.Fatal("expected error for missing key")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Key != "missing.key" {
		t.Errorf("Key = %q, want missing.key", nf.Key)
	}
}

func TestResolverDefaults(t *testing.T) {
	r := NewResolver(newTestEnv())

	if got := r.StringOr("missing", "fallback"); got != "fallback" {
		t.Errorf("StringOr = %q, want fallback", got)
	}
	if got := r.IntOr("missing", 42); got != 42 {
		t.Errorf("IntOr = %d, want 42", got)
	}
	if got := r.BoolOr("missing", true); !got {
		t.Error("BoolOr = false, want true")
	}
	if got := r.DurationOr("missing", time.Second); got != time.Second {
		t.Errorf("DurationOr = %v, want 1s", got)
	}

	// Present keys win over defaults.
	if got := r.IntOr("server.port", 42); got != 8080 {
		t.Errorf("IntOr = %d, want 8080", got)
	}
}

func TestResolverTypedConversions(t *testing.T) {
	r := NewResolver(newTestEnv())

	b, err := r.GetBool("debug")
	if err != nil {
		t.Fatalf("GetBool error: %v", err)
	}
	if b {
		t.Error("debug = true, want false")
	}

	d, err := r.GetDuration("timeout")
	if err != nil {
		t.Fatalf("GetDuration error: %v", err)
	}
	if d != 250*time.Millisecond {
		t.Errorf("timeout = %v, want 250ms", d)
	}

	f, err := r.GetFloat("rate")
	if err != nil {
		t.Fatalf("GetFloat error: %v", err)
	}
	if f != 0.5 {
		t.Errorf("rate = %v, want 0.5", f)
	}

	list, err := r.GetStrings("origins")
	if err != nil {
		t.Fatalf("GetStrings error: %v", err)
	}
	if len(list) != 2 || list[0] != "a.example.com" || list[1] != "b.example.com" {
		t.Errorf("origins = %v", list)
	}
}

func TestResolverStringConversionFromYAMLTypes(t *testing.T) {
	// YAML scalars decode to int/bool; strings must still round-trip.
	r := NewResolver(newTestEnv())

	s, err := r.GetString("server.port")
	if err != nil {
		t.Fatalf("GetString error: %v", err)
	}
	if s != "8080" {
		t.Errorf("server.port as string = %q, want 8080", s)
	}
}

func TestResolverBadConversion(t *testing.T) {
	r := NewResolver(newTestEnv())

	if _, err := r.GetInt("server.host"); err == nil {
		t.Error("expected conversion error for GetInt on a hostname")
	}
	if _, err := r.GetDuration("server.host"); err == nil {
		t.Error("expected conversion error for GetDuration on a hostname")
	}
}

func TestResolverNamedExpansion(t *testing.T) {
	app := envsource.NewMapSource("application", 0, envsource.ConventionDotted).
		Set("services.billing.url", "https://billing.internal").
		Set("services.audit.url", "https://audit.internal")
	env := &fakeEnv{sources: []envsource.Source{app}}

	r := NewResolver(env).Named("billing")
	url, err := r.GetString("services.*.url")
	if err != nil {
		t.Fatalf("GetString error: %v", err)
	}
	if url != "https://billing.internal" {
		t.Errorf("url = %q, want billing endpoint", url)
	}

	// Without a name the template resolves nothing.
	if _, err := NewResolver(env).Get("services.*.url"); err == nil {
		t.Error("expected not-found for unexpanded template")
	}
}

func TestResolverLookup(t *testing.T) {
	r := NewResolver(newTestEnv())

	if _, ok := r.Lookup("server.port"); !ok {
		t.Error("Lookup(server.port) = false, want true")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup(missing) = true, want false")
	}
}
