//go:build ignore

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/zscreen/zscreen/internal/screens"
	"github.com/zscreen/zscreen/internal/ui"
)

// Renders the grid each screen in a manifest would produce for a given
// host count, without a server. Every host is assumed to match every
// graph name; pass graphs-per-host to model partial matches.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run tools/preview-layout.go <manifest.yaml> <hosts> [graphs-per-host]")
		fmt.Println("Example: go run tools/preview-layout.go screens.yaml 5")
		os.Exit(1)
	}

	manifest, err := screens.LoadManifest(os.Args[1])
	if err != nil {
		fmt.Printf("Error loading manifest: %v\n", err)
		os.Exit(1)
	}

	hosts, err := strconv.Atoi(os.Args[2])
	if err != nil || hosts < 1 {
		fmt.Printf("Invalid host count %q\n", os.Args[2])
		os.Exit(1)
	}

	perHost := -1
	if len(os.Args) > 3 {
		if perHost, err = strconv.Atoi(os.Args[3]); err != nil || perHost < 0 {
			fmt.Printf("Invalid graphs-per-host %q\n", os.Args[3])
			os.Exit(1)
		}
	}

	for _, spec := range manifest.Screens {
		if spec.State != screens.StatePresent {
			continue
		}

		count := len(spec.GraphNames)
		if perHost >= 0 {
			count = perHost
		}

		// Fabricated graph ids; only the placement math matters here.
		graphsByHost := make([][]string, hosts)
		next := 100
		for i := range graphsByHost {
			for j := 0; j < count; j++ {
				graphsByHost[i] = append(graphsByHost[i], strconv.Itoa(next))
				next++
			}
		}

		grid := screens.BuildGrid(graphsByHost, spec.GraphsPerRow, spec.GraphWidth, spec.GraphHeight)
		fmt.Print(ui.RenderGrid(spec.Name, grid))
		fmt.Println()
	}
}
