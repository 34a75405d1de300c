package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDangerousOperation displays a warning box and prompts the user to type
// "I AGREE" to proceed with a dangerous operation. Returns true if the user
// confirmed, false otherwise.
func ConfirmDangerousOperation(title string, warnings []string, disclaimer string) bool {
	width := GetTerminalWidth()
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string

	// Title with warning marker
	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   ⚠  WARNING  ─  %s", title))
	lines = append(lines, "")
	lines = append(lines, titleLine)
	lines = append(lines, "")

	// Warning bullet points
	for _, warning := range warnings {
		bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	// Disclaimer in muted text, word-wrapped
	if disclaimer != "" {
		disclaimerStyle := lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true).
			Width(width - 12).
			PaddingLeft(3)
		lines = append(lines, disclaimerStyle.Render(disclaimer))
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")

	// Double border in orange/warning color
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(content)

	fmt.Println(box)
	fmt.Println()

	// Prompt for confirmation
	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	input, err := PromptLine(promptStyle.Render("To proceed, type \"I AGREE\" and press Enter: "))
	if err != nil {
		fmt.Println()
		return false
	}

	// Check if user typed "I AGREE"
	if input == "I AGREE" {
		fmt.Println()
		return true
	}

	// User did not agree
	fmt.Println()
	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	fmt.Println(cancelStyle.Render("  Operation cancelled."))
	fmt.Println()
	return false
}

// MigrationConfirmation is a pre-configured confirmation for batch IP changes
func MigrationConfirmation(cameraCount int) bool {
	return ConfirmDangerousOperation(
		"NETWORK RECONFIGURATION",
		[]string{
			fmt.Sprintf("This operation will change the IP address of %d camera(s)", cameraCount),
			"Cameras become unreachable at their current addresses once the change is accepted",
			"Most cameras reboot to apply a new address, interrupting any recording or streams",
			"A wrong gateway or prefix can leave a camera reachable only via hardware reset",
		},
		"Review the planned changes above before proceeding. If this machine is not "+
			"on the destination subnet, verification will fail even when the cameras "+
			"apply the change correctly.",
	)
}
