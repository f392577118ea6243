package screens

import (
	"reflect"
	"testing"
)

func intp(v int) *int { return &v }

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name         string
		hostCount    int
		maxGraphs    int
		graphsPerRow int
		want         Layout
	}{
		{
			name:         "single host graphs fit in one row",
			hostCount:    1,
			maxGraphs:    2,
			graphsPerRow: 3,
			want:         Layout{Columns: 2, Rows: 1},
		},
		{
			name:         "single host graphs wrap",
			hostCount:    1,
			maxGraphs:    7,
			graphsPerRow: 3,
			want:         Layout{Columns: 3, Rows: 3},
		},
		{
			name:         "single host exact multiple",
			hostCount:    1,
			maxGraphs:    6,
			graphsPerRow: 3,
			want:         Layout{Columns: 3, Rows: 2},
		},
		{
			name:         "hosts fit in one band",
			hostCount:    3,
			maxGraphs:    4,
			graphsPerRow: 3,
			want:         Layout{Columns: 3, Rows: 4},
		},
		{
			name:         "hosts wrap into second band",
			hostCount:    5,
			maxGraphs:    2,
			graphsPerRow: 3,
			want:         Layout{Columns: 3, Rows: 4},
		},
		{
			name:         "hosts divide evenly into bands",
			hostCount:    6,
			maxGraphs:    2,
			graphsPerRow: 3,
			want:         Layout{Columns: 3, Rows: 4},
		},
		{
			name:         "fewer hosts than row width",
			hostCount:    2,
			maxGraphs:    5,
			graphsPerRow: 3,
			want:         Layout{Columns: 2, Rows: 5},
		},
		{
			name:         "zero graphs counts as one row",
			hostCount:    2,
			maxGraphs:    0,
			graphsPerRow: 3,
			want:         Layout{Columns: 2, Rows: 1},
		},
		{
			name:         "row width clamped to one",
			hostCount:    1,
			maxGraphs:    2,
			graphsPerRow: 0,
			want:         Layout{Columns: 1, Rows: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLayout(tt.hostCount, tt.maxGraphs, tt.graphsPerRow)
			if got != tt.want {
				t.Errorf("ComputeLayout(%d, %d, %d) = %+v, want %+v",
					tt.hostCount, tt.maxGraphs, tt.graphsPerRow, got, tt.want)
			}
		})
	}
}

func TestCellSize(t *testing.T) {
	tests := []struct {
		name       string
		width      *int
		height     *int
		hostCount  int
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "defaults for few hosts",
			hostCount:  3,
			wantWidth:  500,
			wantHeight: 100,
		},
		{
			name:       "defaults for many hosts",
			hostCount:  4,
			wantWidth:  200,
			wantHeight: 100,
		},
		{
			name:       "negative values select defaults",
			width:      intp(-1),
			height:     intp(-5),
			hostCount:  2,
			wantWidth:  500,
			wantHeight: 100,
		},
		{
			name:       "explicit zero is kept",
			width:      intp(0),
			height:     intp(0),
			hostCount:  2,
			wantWidth:  0,
			wantHeight: 0,
		},
		{
			name:       "explicit values win",
			width:      intp(640),
			height:     intp(240),
			hostCount:  10,
			wantWidth:  640,
			wantHeight: 240,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := CellSize(tt.width, tt.height, tt.hostCount)
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("CellSize() = (%d, %d), want (%d, %d)", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestBuildGridSingleHost(t *testing.T) {
	graphs := [][]string{{"g1", "g2", "g3", "g4", "g5"}}

	grid := BuildGrid(graphs, 3, nil, nil)

	if grid.Columns != 3 || grid.Rows != 2 {
		t.Fatalf("grid geometry = %dx%d, want 3x2", grid.Columns, grid.Rows)
	}
	wantPositions := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}}
	if len(grid.Cells) != len(wantPositions) {
		t.Fatalf("got %d cells, want %d", len(grid.Cells), len(wantPositions))
	}
	for i, cell := range grid.Cells {
		if cell.X != wantPositions[i][0] || cell.Y != wantPositions[i][1] {
			t.Errorf("cell %d at (%d, %d), want (%d, %d)",
				i, cell.X, cell.Y, wantPositions[i][0], wantPositions[i][1])
		}
		if cell.Width != 500 || cell.Height != 100 {
			t.Errorf("cell %d size = %dx%d, want 500x100", i, cell.Width, cell.Height)
		}
	}
}

func TestBuildGridMultiHost(t *testing.T) {
	// Five hosts with two graphs each, three per row: two bands of two rows.
	graphs := [][]string{
		{"h0g0", "h0g1"},
		{"h1g0", "h1g1"},
		{"h2g0", "h2g1"},
		{"h3g0", "h3g1"},
		{"h4g0", "h4g1"},
	}

	grid := BuildGrid(graphs, 3, nil, nil)

	if grid.Columns != 3 || grid.Rows != 4 {
		t.Fatalf("grid geometry = %dx%d, want 3x4", grid.Columns, grid.Rows)
	}

	// Fourth host wraps to the second band, its second graph lands at (0, 3).
	var found *Cell
	for i := range grid.Cells {
		if grid.Cells[i].GraphID == "h3g1" {
			found = &grid.Cells[i]
			break
		}
	}
	if found == nil {
		t.Fatal("graph h3g1 not placed")
	}
	if found.X != 0 || found.Y != 3 {
		t.Errorf("h3g1 at (%d, %d), want (0, 3)", found.X, found.Y)
	}

	// Five hosts is past the dense threshold.
	if grid.Cells[0].Width != 200 {
		t.Errorf("cell width = %d, want 200", grid.Cells[0].Width)
	}
}

func TestBuildGridHostWithoutGraphs(t *testing.T) {
	graphs := [][]string{
		{"a1", "a2"},
		{},
		{"c1"},
	}

	grid := BuildGrid(graphs, 3, nil, nil)

	if grid.Columns != 3 || grid.Rows != 2 {
		t.Fatalf("grid geometry = %dx%d, want 3x2", grid.Columns, grid.Rows)
	}
	if len(grid.Cells) != 3 {
		t.Fatalf("got %d cells, want 3", len(grid.Cells))
	}
	// The empty host still occupies column 1, so c1 lands in column 2.
	last := grid.Cells[2]
	if last.GraphID != "c1" || last.X != 2 || last.Y != 0 {
		t.Errorf("c1 at (%d, %d), want (2, 0)", last.X, last.Y)
	}
}

func TestGraphIDs(t *testing.T) {
	graphs := [][]string{
		{"a1", "a2"},
		{},
		{"c1"},
	}

	got := GraphIDs(graphs)
	want := []string{"a1", "a2", "c1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GraphIDs() = %v, want %v", got, want)
	}
}
