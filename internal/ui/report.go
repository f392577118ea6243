package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zscreen/zscreen/internal/screens"
	"github.com/zscreen/zscreen/internal/zabbix"
)

// RenderSummary formats a reconcile summary for terminal display.
// In dry-run mode the phrasing switches to what would have happened.
func RenderSummary(s screens.Summary) string {
	var b strings.Builder

	if s.DryRun {
		b.WriteString(MutedStyle.Render("Dry run: no changes were made to the server."))
		b.WriteString("\n")
	}

	writeOutcomeLine(&b, SuccessStyle, MarkerCreated, verb(s.DryRun, "Would create", "Successfully created"), s.Created)
	writeOutcomeLine(&b, WarningStyle, MarkerUpdated, verb(s.DryRun, "Would update", "Successfully updated"), s.Updated)
	writeOutcomeLine(&b, SuccessStyle, MarkerDeleted, verb(s.DryRun, "Would delete", "Successfully deleted"), s.Deleted)
	writeOutcomeLine(&b, MutedStyle, MarkerUnchanged, "Unchanged", s.Unchanged)

	if !s.Changed() && len(s.Unchanged) == 0 {
		b.WriteString(MutedStyle.Render(MarkerUnchanged))
		b.WriteString(" Nothing to do.\n")
	}

	return b.String()
}

func verb(dryRun bool, would, did string) string {
	if dryRun {
		return would
	}
	return did
}

func writeOutcomeLine(b *strings.Builder, style lipgloss.Style, marker, action string, names []string) {
	if len(names) == 0 {
		return
	}
	b.WriteString(style.Render(marker))
	b.WriteString(fmt.Sprintf(" %s screen(s): %s\n", action, strings.Join(names, ", ")))
}

// RenderError formats a failure line.
func RenderError(err error) string {
	return fmt.Sprintf("%s %v", ErrorStyle.Render(FailureMarker), err)
}

// RenderProblems formats validation problems, one line each.
func RenderProblems(errs []error) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(RenderError(err))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderScreenInfo formats a screen and its items for the show command.
func RenderScreenInfo(screen zabbix.Screen, items []zabbix.ScreenItem) string {
	var b strings.Builder

	b.WriteString("=== Screen ===\n")
	b.WriteString(fmt.Sprintf("Name:    %s\n", screen.Name))
	b.WriteString(fmt.Sprintf("ID:      %s\n", screen.ID))
	b.WriteString(fmt.Sprintf("Size:    %d columns x %d rows\n", screen.Columns, screen.Rows))
	b.WriteString(fmt.Sprintf("Items:   %d\n", len(items)))

	if len(items) > 0 {
		b.WriteString("\n=== Items ===\n")
		for _, item := range items {
			b.WriteString(fmt.Sprintf("(%d,%d)  graph %-8s %dx%d\n",
				item.X, item.Y, item.ResourceID, item.Width, item.Height))
		}
	}

	return b.String()
}

// RenderGrid formats a computed layout for the validate command, showing
// where each graph would land.
func RenderGrid(name string, grid screens.Grid) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== Layout: %s ===\n", name))
	b.WriteString(fmt.Sprintf("Columns: %d\n", grid.Columns))
	b.WriteString(fmt.Sprintf("Rows:    %d\n", grid.Rows))

	for _, cell := range grid.Cells {
		b.WriteString(fmt.Sprintf("(%d,%d)  graph %-8s %dx%d\n",
			cell.X, cell.Y, cell.GraphID, cell.Width, cell.Height))
	}

	return b.String()
}

// RenderServerStatus formats the status command output.
func RenderServerStatus(server, version string, screenNames []string) string {
	var b strings.Builder

	b.WriteString("=== Server ===\n")
	b.WriteString(fmt.Sprintf("URL:     %s\n", server))
	b.WriteString(fmt.Sprintf("Version: %s\n", version))
	b.WriteString(fmt.Sprintf("Screens: %d\n", len(screenNames)))

	if len(screenNames) > 0 {
		b.WriteString("\n=== Screens ===\n")
		for _, name := range screenNames {
			b.WriteString(fmt.Sprintf("%s\n", name))
		}
	}

	return b.String()
}
