package envsource

import (
	"os"
	"strings"
)

// EnvironmentName is the report name of the process environment source.
const EnvironmentName = "env"

// NewEnvironmentSource snapshots the process environment variables at
// construction time. Variables changed afterwards are not reflected.
func NewEnvironmentSource() *MapSource {
	s := NewMapSource(EnvironmentName, OrderEnvironment, ConventionEnvVar)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		s.Set(key, value)
	}
	return s
}
