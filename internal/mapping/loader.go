package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the declaration schema version.
const CurrentVersion = "1"

// ErrEmptyFile is returned for declaration files without any content.
var ErrEmptyFile = errors.New("empty declaration file")

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// Parse parses YAML data into a MappingFile. Unknown keys are rejected.
func Parse(data []byte) (*MappingFile, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	if len(node.Content) == 0 {
		return nil, ErrEmptyFile
	}

	var mf MappingFile
	if err := decodeStrict(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// decodeStrict decodes data into out, failing on keys out has no field for.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	return dec.Decode(out)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}

	for i := range mf.Types {
		if mf.Types[i].Kind == "" {
			mf.Types[i].Kind = "bean"
		}
	}
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal declaration: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write declaration file %s: %w", path, err)
	}

	return nil
}

// NormalizeMethod expands the 121 and ignore shorthands into directives.
// 121 entries come first, ordered by target, then the explicit mappings, then
// the ignores; the first directive of a target wins.
func NormalizeMethod(m *MethodDef) {
	if len(m.OneToOne) == 0 && len(m.Ignore) == 0 {
		return
	}

	expanded := make([]MappingDef, 0, len(m.OneToOne)+len(m.Mappings)+len(m.Ignore))

	sources := make([]string, 0, len(m.OneToOne))
	for source := range m.OneToOne {
		sources = append(sources, source)
	}

	sort.Slice(sources, func(i, j int) bool {
		ti, tj := m.OneToOne[sources[i]], m.OneToOne[sources[j]]
		if ti != tj {
			return ti < tj
		}

		return sources[i] < sources[j]
	})

	for _, source := range sources {
		expanded = append(expanded, MappingDef{Target: m.OneToOne[source], Source: source})
	}

	expanded = append(expanded, m.Mappings...)

	for _, target := range m.Ignore {
		expanded = append(expanded, MappingDef{Target: target, Ignore: true})
	}

	m.Mappings = expanded
	m.OneToOne = nil
	m.Ignore = nil
}

// NormalizeMappingFile normalizes the methods of the mapper and of used mappers.
func NormalizeMappingFile(mf *MappingFile) {
	for i := range mf.Mapper.Methods {
		NormalizeMethod(&mf.Mapper.Methods[i])
	}

	for i := range mf.Uses {
		for j := range mf.Uses[i].Methods {
			NormalizeMethod(&mf.Uses[i].Methods[j])
		}
	}
}
