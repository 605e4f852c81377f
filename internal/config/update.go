package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/devboot/internal/errors"
	"github.com/rileyhilliard/devboot/internal/util"
	"gopkg.in/yaml.v3"
)

const fileHeader = `# devboot configuration
# Run 'devboot' to start the setup menu.
# Key and backup locations are fixed and not configurable here.

`

// Write marshals cfg to path with a header comment, creating parent directories.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to create config directory: %s", filepath.Dir(path)),
			"Check directory permissions")
	}

	if err := util.WriteFileAtomic(path, []byte(fileHeader+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}
	return nil
}

// SaveIdentity stores the identity defaults in an existing config file.
// It edits the YAML node tree so comments and key order survive.
func SaveIdentity(configPath string, id IdentityDefaults) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	var docNode *yaml.Node
	switch {
	case root.Kind == 0:
		// Empty file
		docNode = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{docNode}}
	case root.Kind == yaml.DocumentNode && len(root.Content) > 0 && root.Content[0].Kind == yaml.MappingNode:
		docNode = root.Content[0]
	default:
		return fmt.Errorf("expected mapping at document root")
	}

	identityNode := findMapValue(docNode, "identity")
	if identityNode == nil || identityNode.Kind != yaml.MappingNode {
		newNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if identityNode == nil {
			docNode.Content = append(docNode.Content, scalarNode("identity"), newNode)
		} else {
			// identity: null or a scalar; replace in place
			*identityNode = *newNode
			newNode = identityNode
		}
		identityNode = newNode
	}

	setMapScalar(identityNode, "username", id.Username)
	setMapScalar(identityNode, "email", id.Email)

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := util.WriteFileAtomic(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// setMapScalar sets key to a string value, adding the key if missing.
func setMapScalar(node *yaml.Node, key, value string) {
	if existing := findMapValue(node, key); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = "!!str"
		existing.Value = value
		existing.Content = nil
		return
	}
	node.Content = append(node.Content, scalarNode(key), scalarNode(value))
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
	}
}
