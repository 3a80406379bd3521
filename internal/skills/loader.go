package skills

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML document accepted by LoadExtra:
//
//	categories:
//	  - name: tools
//	    skills: [bazel, buildkite]
//	  - name: cloud_native
//	    skills: [istio, envoy]
type File struct {
	Categories []Category `yaml:"categories"`
}

// LoadExtra reads additional categories from a YAML file.
func LoadExtra(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills file %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse skills file %s: %w", path, err)
	}
	return f.Categories, nil
}

// NewFromFile builds a Database extended with the categories in path.
// An empty path yields the built-in database.
func NewFromFile(path string) (*Database, error) {
	if path == "" {
		return Default(), nil
	}
	extra, err := LoadExtra(path)
	if err != nil {
		return nil, err
	}
	return New(extra...), nil
}
