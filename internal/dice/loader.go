package dice

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSetFile is the top-level YAML structure for dice-set files.
type yamlSetFile struct {
	Dice []yamlDie `yaml:"dice"`
}

// yamlDie is the YAML representation of one die definition.
type yamlDie struct {
	Name    string         `yaml:"name"`
	Count   int            `yaml:"count"`
	Faces   []any          `yaml:"faces"`
	Weights map[string]any `yaml:"weights"`
}

// Definition is a named die configuration loaded from a dice-set file.
type Definition struct {
	Name    string
	Count   int
	Faces   []Face
	Weights map[Face]float64
}

// Build creates Count dice from the definition, applying its weights to each.
//
// Postcondition: Returns Count dice, or the first construction error.
func (def Definition) Build(opts ...DieOption) ([]*Die, error) {
	out := make([]*Die, 0, def.Count)
	for i := 0; i < def.Count; i++ {
		d, err := NewDie(def.Faces, opts...)
		if err != nil {
			return nil, fmt.Errorf("building die %q: %w", def.Name, err)
		}
		for f, w := range def.Weights {
			if err := d.ChangeWeight(f, w); err != nil {
				return nil, fmt.Errorf("building die %q: %w", def.Name, err)
			}
		}
		out = append(out, d)
	}
	return out, nil
}

// LoadSetFromFile reads and validates a dice-set YAML file.
//
// Precondition: path must point to a YAML dice-set file.
// Postcondition: Returns at least one Definition or a non-nil error.
func LoadSetFromFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dice file %s: %w", path, err)
	}
	return LoadSetFromBytes(data)
}

// LoadSetFromBytes parses and validates a dice set from YAML bytes.
//
// Postcondition: Returns at least one Definition or a non-nil error.
func LoadSetFromBytes(data []byte) ([]Definition, error) {
	var file yamlSetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing dice YAML: %w", err)
	}
	if len(file.Dice) == 0 {
		return nil, fmt.Errorf("dice set defines no dice")
	}

	defs := make([]Definition, 0, len(file.Dice))
	for i, yd := range file.Dice {
		def, err := convertYAMLDie(yd)
		if err != nil {
			return nil, fmt.Errorf("dice[%d] %q: %w", i, yd.Name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// convertYAMLDie converts a parsed definition into domain types. Weight keys
// are matched against each face's String form.
func convertYAMLDie(yd yamlDie) (Definition, error) {
	faces, err := FacesOf(yd.Faces)
	if err != nil {
		return Definition{}, err
	}
	// Validate faces up front so errors surface at load time.
	if _, err := NewDie(faces); err != nil {
		return Definition{}, err
	}

	count := yd.Count
	switch {
	case count == 0:
		count = 1
	case count < 0:
		return Definition{}, fmt.Errorf("count must be >= 1, got %d", count)
	}

	byName := make(map[string]Face, len(faces))
	for _, f := range faces {
		byName[f.String()] = f
	}
	weights := make(map[Face]float64, len(yd.Weights))
	for key, raw := range yd.Weights {
		f, ok := byName[key]
		if !ok {
			return Definition{}, fmt.Errorf("weight for face %q: %w", key, ErrUnknownFace)
		}
		w, err := WeightOf(raw)
		if err != nil {
			return Definition{}, fmt.Errorf("weight for face %q: %w", key, err)
		}
		weights[f] = w
	}

	return Definition{
		Name:    yd.Name,
		Count:   count,
		Faces:   faces,
		Weights: weights,
	}, nil
}
