package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResponseOutput represents a box for displaying raw SOAP responses.
// Used in verbose mode to show exactly what a camera answered.
type ResponseOutput struct {
	Title    string   // e.g., "SOAP Response"
	Content  string   // The raw response body
	Lines    []string // Parsed output lines (for filtering)
	Width    int      // Terminal width
	MaxLines int      // Maximum lines to display (0 = unlimited)
}

// NewResponseOutput creates a new SOAP response box
func NewResponseOutput(content string) *ResponseOutput {
	return &ResponseOutput{
		Title:    "SOAP Response",
		Content:  content,
		Lines:    strings.Split(content, "\n"),
		Width:    GetTerminalWidth(),
		MaxLines: 0,
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *ResponseOutput) SetWidth(width int) *ResponseOutput {
	r.Width = width
	return r
}

// SetTitle sets a custom title for the box
func (r *ResponseOutput) SetTitle(title string) *ResponseOutput {
	r.Title = title
	return r
}

// SetMaxLines limits the number of lines displayed
func (r *ResponseOutput) SetMaxLines(max int) *ResponseOutput {
	r.MaxLines = max
	return r
}

// FilterLines filters the output to only show lines matching the given patterns.
// Useful for extracting specific response elements (e.g., faults, interface tokens).
func (r *ResponseOutput) FilterLines(patterns ...string) *ResponseOutput {
	var filtered []string
	for _, line := range r.Lines {
		for _, pattern := range patterns {
			if strings.Contains(line, pattern) {
				filtered = append(filtered, line)
				break
			}
		}
	}
	r.Lines = filtered
	r.Content = strings.Join(filtered, "\n")
	return r
}

// Render returns the styled response box as a string
func (r *ResponseOutput) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	// Apply max lines limit
	lines := r.Lines
	if r.MaxLines > 0 && len(lines) > r.MaxLines {
		lines = lines[:r.MaxLines]
		lines = append(lines, "... (output truncated)")
	}

	// Title styled
	titleStyled := ResponseOutputTitleStyle.Render(r.Title)

	// Content styled (preserve monospace formatting)
	contentStyled := ResponseOutputContentStyle.Render(strings.Join(lines, "\n"))

	// Combine title and content
	inner := lipgloss.JoinVertical(lipgloss.Left, titleStyled, "", contentStyled)

	// Box with muted border
	boxWidth := width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(boxWidth).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}

// String implements fmt.Stringer
func (r *ResponseOutput) String() string {
	return r.Render()
}

// RenderResponseOutput renders a SOAP response box with the given content
func RenderResponseOutput(content string) string {
	return NewResponseOutput(content).Render()
}
