package screens

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Manifest is a YAML document listing the screens to reconcile, applied in
// order.
type Manifest struct {
	Screens []ScreenSpec `yaml:"screens"`
}

// LoadManifest reads and parses the manifest at path. The returned specs
// are normalized and validated.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes manifest YAML. Unknown fields are rejected so typos
// like graph_widht surface as errors instead of silently using defaults.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewConfigError("manifest is empty")
		}
		return nil, &ScreenError{Kind: ErrKindConfig, Message: "manifest is not valid YAML", Err: err}
	}
	if len(m.Screens) == 0 {
		return nil, NewConfigError("manifest defines no screens")
	}

	var errs []error
	seen := make(map[string]bool, len(m.Screens))
	for i := range m.Screens {
		spec := &m.Screens[i]
		spec.Normalize()
		errs = append(errs, spec.Validate()...)
		if seen[spec.Name] {
			errs = append(errs, NewConfigError(fmt.Sprintf("screen %q is defined more than once", spec.Name)))
		}
		seen[spec.Name] = true
	}
	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	return &m, nil
}
