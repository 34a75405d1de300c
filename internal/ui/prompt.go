package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// PromptPassword reads a password from the terminal with echo disabled.
// The password never touches the config file or the logs, so this prompt
// is the only way credentials enter the program. When stdin is not a
// terminal (e.g. piped input), it falls back to reading a single line.
func PromptPassword(username string) (string, error) {
	promptStyle := lipgloss.NewStyle().Foreground(TextColor)
	fmt.Print(promptStyle.Render(fmt.Sprintf("Password for %s: ", username)))

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptLine reads a single line of input. The prompt is printed as given,
// so callers style it themselves.
func PromptLine(prompt string) (string, error) {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
