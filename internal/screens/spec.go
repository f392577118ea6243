package screens

import "fmt"

// State selects whether a screen should exist on the server.
type State string

const (
	// StatePresent ensures the screen exists and matches its definition
	StatePresent State = "present"
	// StateAbsent ensures the screen does not exist
	StateAbsent State = "absent"
)

// ScreenSpec is the desired state of a single screen: which hosts feed it,
// which graphs it shows, and how the grid is shaped.
type ScreenSpec struct {
	// Name uniquely identifies the screen on the server.
	Name string `yaml:"name"`

	// HostGroups lists the host groups whose hosts populate the screen.
	// A host must belong to every listed group to be included.
	HostGroups []string `yaml:"host_groups,omitempty"`

	// GraphNames are matched per host as case-insensitive substrings,
	// in order. Every match contributes one cell.
	GraphNames []string `yaml:"graph_names,omitempty"`

	// GraphWidth is the cell width in pixels. Unset or negative selects
	// the default: 500 below four hosts, 200 from four up.
	GraphWidth *int `yaml:"graph_width,omitempty"`

	// GraphHeight is the cell height in pixels. Unset or negative
	// selects the default of 100.
	GraphHeight *int `yaml:"graph_height,omitempty"`

	// GraphsPerRow caps the number of grid columns. Defaults to 3.
	GraphsPerRow int `yaml:"graphs_per_row,omitempty"`

	// SortHosts orders hosts by name before placement. Names compare
	// byte-wise, so zero-pad numbered hosts (host01, host02) if host2
	// must not follow host10.
	SortHosts bool `yaml:"sort,omitempty"`

	// State is "present" (the default) or "absent".
	State State `yaml:"state,omitempty"`
}

// Normalize fills in the documented defaults. Call it before Validate.
func (s *ScreenSpec) Normalize() {
	if s.State == "" {
		s.State = StatePresent
	}
	if s.GraphsPerRow == 0 {
		s.GraphsPerRow = DefaultGraphsPerRow
	}
}

// Validate checks the definition for problems that make it unusable.
// Returns a slice of errors, empty if the definition is valid.
func (s ScreenSpec) Validate() []error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, NewConfigError("screen name is required"))
	}
	if s.State != StatePresent && s.State != StateAbsent {
		errs = append(errs, NewConfigError(
			fmt.Sprintf("screen %q: state must be %q or %q, got %q", s.Name, StatePresent, StateAbsent, s.State)))
	}
	if s.State == StatePresent {
		if len(s.HostGroups) == 0 {
			errs = append(errs, NewConfigError(
				fmt.Sprintf("screen %q: at least one host group is required", s.Name)))
		}
		if len(s.GraphNames) == 0 {
			errs = append(errs, NewConfigError(
				fmt.Sprintf("screen %q: at least one graph name is required", s.Name)))
		}
	}
	if s.GraphsPerRow < 1 {
		errs = append(errs, NewConfigError(
			fmt.Sprintf("screen %q: graphs_per_row must be at least 1, got %d", s.Name, s.GraphsPerRow)))
	}

	return errs
}
