package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDeletion displays a warning box listing the screens about to be
// deleted and prompts the user to type "yes" to proceed. Returns true if
// the user confirmed, false otherwise.
func ConfirmDeletion(screenNames []string) bool {
	width := GetTerminalWidth()
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render("   ⚠  WARNING  ─  SCREEN DELETION")
	lines = append(lines, "")
	lines = append(lines, titleLine)
	lines = append(lines, "")

	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, name := range screenNames {
		lines = append(lines, bulletStyle.Render("   • "+name))
	}
	lines = append(lines, "")

	noteStyle := lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true).
		Width(width - 12).
		PaddingLeft(3)
	lines = append(lines, noteStyle.Render(
		"Deleting a screen removes it and all of its graph placements from "+
			"the Zabbix server. This cannot be undone."))
	lines = append(lines, "")

	content := strings.Join(lines, "\n")

	box := WarningBoxStyle(width).Render(content)

	fmt.Println(box)
	fmt.Println()

	fmt.Print(PromptStyle.Render("To proceed, type \"yes\" and press Enter: "))

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return false
	}

	input = strings.TrimSpace(input)
	if strings.EqualFold(input, "yes") {
		fmt.Println()
		return true
	}

	fmt.Println()
	fmt.Println(MutedStyle.Render("  Operation cancelled."))
	fmt.Println()
	return false
}
