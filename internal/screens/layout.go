package screens

// Default cell dimensions applied when a screen definition leaves them unset

const (
	// DefaultGraphsPerRow is the column count used when a screen
	// definition does not set graphs_per_row.
	DefaultGraphsPerRow = 3

	// DefaultGraphHeight is the cell height in pixels.
	DefaultGraphHeight = 100

	// DefaultGraphWidth is the cell width in pixels for screens
	// covering fewer than four hosts.
	DefaultGraphWidth = 500

	// DefaultGraphWidthDense is the cell width in pixels once a screen
	// covers four or more hosts.
	DefaultGraphWidthDense = 200
)

// Layout is the grid geometry of a screen (hsize by vsize in API terms).
type Layout struct {
	Columns int
	Rows    int
}

// Cell is a single graph placement within the grid.
type Cell struct {
	GraphID string
	X       int
	Y       int
	Width   int
	Height  int
}

// Grid is a fully computed screen layout: geometry plus ordered cells.
type Grid struct {
	Layout
	Cells []Cell
}

// ComputeLayout returns the grid geometry for hostCount hosts whose largest
// per-host graph count is maxGraphs, wrapping at graphsPerRow columns.
//
// A single host lays its graphs out left to right and wraps after
// graphsPerRow. Multiple hosts get one column each up to graphsPerRow, then
// wrap into bands of maxGraphs rows per band.
func ComputeLayout(hostCount, maxGraphs, graphsPerRow int) Layout {
	if maxGraphs < 1 {
		maxGraphs = 1
	}
	if graphsPerRow < 1 {
		graphsPerRow = 1
	}
	switch {
	case hostCount == 1:
		columns := maxGraphs
		if columns > graphsPerRow {
			columns = graphsPerRow
		}
		return Layout{Columns: columns, Rows: ceilDiv(maxGraphs, columns)}
	case hostCount > graphsPerRow:
		return Layout{Columns: graphsPerRow, Rows: ceilDiv(hostCount, graphsPerRow) * maxGraphs}
	default:
		return Layout{Columns: hostCount, Rows: maxGraphs}
	}
}

// CellSize resolves the effective cell dimensions for a screen covering
// hostCount hosts. Nil or negative values select the defaults; an explicit
// zero is kept.
func CellSize(width, height *int, hostCount int) (int, int) {
	w := DefaultGraphWidthDense
	if hostCount < 4 {
		w = DefaultGraphWidth
	}
	if width != nil && *width >= 0 {
		w = *width
	}
	h := DefaultGraphHeight
	if height != nil && *height >= 0 {
		h = *height
	}
	return w, h
}

// BuildGrid computes the complete grid for the resolved graphs.
//
// graphsByHost holds one inner slice per host, in host order; each inner
// slice preserves that host's graph resolution order. A host with no
// matching graphs contributes no cells but still occupies a column.
func BuildGrid(graphsByHost [][]string, graphsPerRow int, width, height *int) Grid {
	if graphsPerRow < 1 {
		graphsPerRow = 1
	}
	hostCount := len(graphsByHost)
	layout := ComputeLayout(hostCount, maxGraphCount(graphsByHost), graphsPerRow)
	w, h := CellSize(width, height, hostCount)

	var cells []Cell
	if hostCount == 1 {
		for i, id := range graphsByHost[0] {
			cells = append(cells, Cell{
				GraphID: id,
				X:       i % layout.Columns,
				Y:       i / layout.Columns,
				Width:   w,
				Height:  h,
			})
		}
	} else {
		for i, graphs := range graphsByHost {
			band := len(graphs) * (i / graphsPerRow)
			for j, id := range graphs {
				cells = append(cells, Cell{
					GraphID: id,
					X:       i % graphsPerRow,
					Y:       band + j,
					Width:   w,
					Height:  h,
				})
			}
		}
	}
	return Grid{Layout: layout, Cells: cells}
}

// GraphIDs flattens the per-host graph ids in placement order. This is the
// sequence compared against a screen's attached resource ids to decide
// whether an update is needed.
func GraphIDs(graphsByHost [][]string) []string {
	var ids []string
	for _, graphs := range graphsByHost {
		ids = append(ids, graphs...)
	}
	return ids
}

// maxGraphCount returns the largest per-host graph count, at least 1.
func maxGraphCount(graphsByHost [][]string) int {
	n := 1
	for _, graphs := range graphsByHost {
		if len(graphs) > n {
			n = len(graphs)
		}
	}
	return n
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
