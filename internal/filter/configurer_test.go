package filter

import (
	"errors"
	"testing"
)

func TestNewModeConfigurerUnknownMode(t *testing.T) {
	if _, err := NewModeConfigurer("everything", nil); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestNewModeConfigurerInvalidPattern(t *testing.T) {
	_, err := NewModeConfigurer(ModeLegacy, []string{`(bad`})
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
	var perr *InvalidPatternError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *InvalidPatternError, got %T", err)
	}
}

func TestModeConfigurerSpecifyFiltering(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		patterns []string
		key      string
		want     Result
	}{
		{"mask_all masks unmatched", ModeMaskAll, nil, "server.port", Mask},
		{"mask_all patterns are exceptions", ModeMaskAll, []string{`server\..*`}, "server.port", Plain},
		{"mask_none shows unmatched", ModeMaskNone, nil, "server.port", Plain},
		{"mask_none patterns are masked", ModeMaskNone, []string{`.*secret.*`}, "app.secret.value", Mask},
		{"legacy masks vocabulary", ModeLegacy, nil, "db.password", Mask},
		{"legacy shows the rest", ModeLegacy, nil, "db.host", Plain},
		{"legacy with extra patterns", ModeLegacy, []string{`internal\..*`}, "internal.url", Mask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewModeConfigurer(tt.mode, tt.patterns)
			if err != nil {
				t.Fatalf("NewModeConfigurer error: %v", err)
			}

			spec := New(nil)
			c.SpecifyFiltering(spec)

			if got := spec.Classify(tt.key); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfigurerFunc(t *testing.T) {
	called := false
	var c Configurer = ConfigurerFunc(func(spec *Spec) {
		called = true
		spec.MaskNone()
	})
	c.SpecifyFiltering(New(nil))
	if !called {
		t.Error("ConfigurerFunc not invoked")
	}
}
