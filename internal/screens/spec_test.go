package screens

import (
	"strings"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	spec := ScreenSpec{Name: "overview"}
	spec.Normalize()

	if spec.State != StatePresent {
		t.Errorf("State = %q, want %q", spec.State, StatePresent)
	}
	if spec.GraphsPerRow != DefaultGraphsPerRow {
		t.Errorf("GraphsPerRow = %d, want %d", spec.GraphsPerRow, DefaultGraphsPerRow)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	spec := ScreenSpec{Name: "overview", GraphsPerRow: 5, State: StateAbsent}
	spec.Normalize()

	if spec.GraphsPerRow != 5 {
		t.Errorf("GraphsPerRow = %d, want 5", spec.GraphsPerRow)
	}
	if spec.State != StateAbsent {
		t.Errorf("State = %q, want %q", spec.State, StateAbsent)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		spec      ScreenSpec
		wantErrs  int
		wantInMsg string
	}{
		{
			name: "valid present spec",
			spec: ScreenSpec{
				Name:         "overview",
				HostGroups:   []string{"Linux servers"},
				GraphNames:   []string{"CPU"},
				GraphsPerRow: 3,
				State:        StatePresent,
			},
			wantErrs: 0,
		},
		{
			name: "absent spec needs no groups or graphs",
			spec: ScreenSpec{
				Name:         "overview",
				GraphsPerRow: 3,
				State:        StateAbsent,
			},
			wantErrs: 0,
		},
		{
			name: "missing name",
			spec: ScreenSpec{
				HostGroups:   []string{"Linux servers"},
				GraphNames:   []string{"CPU"},
				GraphsPerRow: 3,
				State:        StatePresent,
			},
			wantErrs:  1,
			wantInMsg: "name is required",
		},
		{
			name: "unknown state",
			spec: ScreenSpec{
				Name:         "overview",
				HostGroups:   []string{"Linux servers"},
				GraphNames:   []string{"CPU"},
				GraphsPerRow: 3,
				State:        "gone",
			},
			wantErrs:  1,
			wantInMsg: "state must be",
		},
		{
			name: "present without host groups",
			spec: ScreenSpec{
				Name:         "overview",
				GraphNames:   []string{"CPU"},
				GraphsPerRow: 3,
				State:        StatePresent,
			},
			wantErrs:  1,
			wantInMsg: "host group",
		},
		{
			name: "present without graph names",
			spec: ScreenSpec{
				Name:         "overview",
				HostGroups:   []string{"Linux servers"},
				GraphsPerRow: 3,
				State:        StatePresent,
			},
			wantErrs:  1,
			wantInMsg: "graph name",
		},
		{
			name: "negative graphs per row",
			spec: ScreenSpec{
				Name:         "overview",
				HostGroups:   []string{"Linux servers"},
				GraphNames:   []string{"CPU"},
				GraphsPerRow: -2,
				State:        StatePresent,
			},
			wantErrs:  1,
			wantInMsg: "graphs_per_row",
		},
		{
			name:     "empty spec collects every problem",
			spec:     ScreenSpec{State: StatePresent},
			wantErrs: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.spec.Validate()
			if len(errs) != tt.wantErrs {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, tt.wantErrs)
			}
			if tt.wantInMsg == "" {
				return
			}
			if !IsConfigError(errs[0]) {
				t.Errorf("error kind = %v, want config error", errs[0])
			}
			if got := errs[0].Error(); !strings.Contains(got, tt.wantInMsg) {
				t.Errorf("error %q does not mention %q", got, tt.wantInMsg)
			}
		})
	}
}
