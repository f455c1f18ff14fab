package envsource

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"

	"github.com/eco2-team/backend/domains/env-report/internal/constants"
)

// NewDotenvSource loads a .env file into an in-memory source.
// godotenv returns an unordered map, so keys are sorted for a stable
// iteration order across report builds.
func NewDotenvSource(name, path string) (*MapSource, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf(constants.ErrSourceLoad, name, err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := NewMapSource(name, OrderDotenv, ConventionEnvVar)
	for _, key := range keys {
		s.Set(key, values[key])
	}
	return s, nil
}
