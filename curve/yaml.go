package curve

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlCurves struct {
	Curves []struct {
		Currency string             `yaml:"currency"`
		Quotes   map[string]float64 `yaml:"quotes"`
	} `yaml:"curves"`
}

// LoadSetYAML reads one or more curves from a YAML file:
//
//	curves:
//	  - currency: USD
//	    quotes: {2Y: 3.85, 10Y: 4.25, 30Y: 4.60}
func LoadSetYAML(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSetYAML: %w", err)
	}
	var f yamlCurves
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("LoadSetYAML: parse %s: %w", path, err)
	}

	set := make(Set, len(f.Curves))
	for _, c := range f.Curves {
		crv, err := New(c.Currency, c.Quotes)
		if err != nil {
			return nil, fmt.Errorf("LoadSetYAML: %w", err)
		}
		set[c.Currency] = crv
	}
	return set, nil
}
