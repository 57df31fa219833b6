package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// planFile represents the YAML stage-plan override file
type planFile struct {
	Algorithms map[string]StagePlan `yaml:"algorithms"`
}

// ParsePlans parses YAML plan definitions and merges them over the built-in
// plans. A parsed algorithm replaces the built-in entry of the same name;
// new algorithms are added. Every parsed plan is validated before merging.
func ParsePlans(data []byte) (*Registry, error) {
	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse stage plans: %w", err)
	}

	if len(file.Algorithms) == 0 {
		return nil, fmt.Errorf("stage plan file defines no algorithms")
	}

	r := NewRegistry()
	for name, p := range file.Algorithms {
		if err := validatePlan(name, p); err != nil {
			return nil, err
		}
		p.Algorithm = name
		r.plans[name] = p
	}
	return r, nil
}

// LoadFile loads stage plans from a YAML file on disk
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage plan file: %w", err)
	}
	return ParsePlans(data)
}
