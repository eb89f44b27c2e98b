package queries

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultArchitecture = "x86_64"

// Set names one product scope to query. A presets file lets a single
// run export several product/version/architecture combinations.
type Set struct {
	Name                 string `yaml:"name"`
	ProductNames         string `yaml:"product_names"`
	ProductVersions      string `yaml:"product_versions"`
	ProductArchitectures string `yaml:"product_architectures"`
}

type presetsFile struct {
	Queries []Set `yaml:"queries"`
}

// Loader handles loading and validation of query preset files.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the YAML presets file and returns the validated query
// sets in file order.
func (l *Loader) Load() ([]Set, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Queries) == 0 {
		return nil, fmt.Errorf("no query sets defined in %s", l.path)
	}

	for i := range file.Queries {
		l.setDefaults(&file.Queries[i], i)
		if err := l.validate(&file.Queries[i]); err != nil {
			return nil, fmt.Errorf("invalid query set %q: %w", file.Queries[i].Name, err)
		}
	}

	return file.Queries, nil
}

func (l *Loader) setDefaults(set *Set, index int) {
	if set.Name == "" {
		set.Name = fmt.Sprintf("query-%d", index+1)
	}
	if set.ProductArchitectures == "" {
		set.ProductArchitectures = defaultArchitecture
	}
}

func (l *Loader) validate(set *Set) error {
	if set.ProductNames == "" {
		return fmt.Errorf("product_names is required")
	}
	if set.ProductVersions == "" {
		return fmt.Errorf("product_versions is required")
	}
	return nil
}
