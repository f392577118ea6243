package screens

import "testing"

func TestClosestName(t *testing.T) {
	candidates := []string{"Linux servers", "Windows servers", "Routers", "Zabbix servers"}

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "single typo", input: "Linux servres", want: "Linux servers", wantOK: true},
		{name: "case difference", input: "routers", want: "Routers", wantOK: true},
		{name: "dropped word", input: "Linux", wantOK: false},
		{name: "nothing close", input: "database pool", wantOK: false},
		{name: "exact match", input: "Routers", want: "Routers", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClosestName(tt.input, candidates)
			if ok != tt.wantOK {
				t.Fatalf("ClosestName(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ClosestName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClosestNameNoCandidates(t *testing.T) {
	if got, ok := ClosestName("anything", nil); ok {
		t.Errorf("ClosestName() = %q, want no suggestion", got)
	}
}
