package envsource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eco2-team/backend/domains/env-report/internal/constants"
)

// NewYAMLSource loads a YAML file into an in-memory source, flattening
// nested mappings into dotted keys (server.port) and sequences into
// indexed keys (cors.origins[0]). Document order is preserved by
// decoding through yaml.Node instead of a map.
func NewYAMLSource(name, path string) (*MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(constants.ErrSourceLoad, name, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf(constants.ErrSourceLoad, name, err)
	}

	s := NewMapSource(name, OrderApplicationFile, ConventionDotted)

	// An empty file decodes to a zero node with no content.
	if len(root.Content) == 0 {
		return s, nil
	}

	if err := flattenNode(root.Content[0], "", s); err != nil {
		return nil, fmt.Errorf(constants.ErrSourceLoad, name, err)
	}
	return s, nil
}

func flattenNode(node *yaml.Node, prefix string, s *MapSource) error {
	switch node.Kind {
	case yaml.MappingNode:
		// Content alternates key, value.
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flattenNode(node.Content[i+1], key, s); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			key := fmt.Sprintf("%s[%d]", prefix, i)
			if err := flattenNode(item, key, s); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return err
		}
		s.Set(prefix, value)
	case yaml.AliasNode:
		return flattenNode(node.Alias, prefix, s)
	}
	return nil
}
