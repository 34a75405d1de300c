package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// BatchRunnerConfig holds configuration for a batch camera run
type BatchRunnerConfig struct {
	Title        string            // Command title (e.g., "Batch IP Migration")
	Command      string            // Full command (e.g., "onvifcfg apply")
	Params       map[string]string // Parameters to display in header
	TotalCameras int               // Number of cameras in the plan
	StepNames    []string          // One name per camera (e.g., "192.168.1.64 -> 10.0.1.64")
	Verbose      bool              // Whether to show raw SOAP responses
	Output       io.Writer         // Output writer (default: os.Stdout)
}

// BatchRunner orchestrates the UI for a batch camera run.
// It manages the header, the per-camera step lines, and the final
// result box, and collects raw responses for verbose display.
type BatchRunner struct {
	config    BatchRunnerConfig
	header    *Header
	progress  *Progress
	output    io.Writer
	responses []string
	startTime time.Time
	width     int
}

// NewBatchRunner creates a new runner for a batch camera command
func NewBatchRunner(config BatchRunnerConfig) *BatchRunner {
	// Set defaults
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := GetTerminalWidth()

	// Create header
	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	// Create progress tracker, one step per camera
	var progress *Progress
	if config.TotalCameras > 0 {
		progress = NewProgress("", config.TotalCameras)
		progress.SetWidth(width)
		if len(config.StepNames) > 0 {
			progress.SetStepNames(config.StepNames)
		}
	}

	return &BatchRunner{
		config:   config,
		header:   header,
		progress: progress,
		output:   config.Output,
		width:    width,
	}
}

// Start prints the command header and begins timing the run
func (r *BatchRunner) Start() {
	r.startTime = time.Now()
	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)
}

// OnStep returns the callback that renders per-camera progress lines.
// Callers report each camera as StepRunning when its request starts and
// StepComplete or StepFailed when its result is known.
func (r *BatchRunner) OnStep() StepCallback {
	return func(stepNumber int, name string, status StepStatus, message string) {
		if r.progress == nil {
			return
		}

		// Update step name if provided
		if name != "" && stepNumber > 0 && stepNumber <= len(r.progress.Steps) {
			r.progress.Steps[stepNumber-1].Name = name
		}

		// Update step status
		r.progress.UpdateStep(stepNumber, status, message)

		// Print progress line
		if status == StepComplete || status == StepFailed || status == StepSkipped {
			// Print completed step
			step := r.progress.Steps[stepNumber-1]
			_, _ = fmt.Fprintln(r.output, r.progress.renderStepLine(step))
		} else if status == StepRunning {
			// Print running step (will be overwritten when complete)
			step := r.progress.Steps[stepNumber-1]
			_, _ = fmt.Fprint(r.output, r.progress.renderStepLine(step)+"\r")
		}
	}
}

// AddResponse stores a raw SOAP response for verbose display
func (r *BatchRunner) AddResponse(body string) {
	if body != "" {
		r.responses = append(r.responses, body)
	}
}

// Finish prints the final result box. The run counts as a success only
// when every camera accepted its new configuration; a mixed outcome is
// shown as a warning so the operator reviews the failed lines above.
func (r *BatchRunner) Finish(succeeded, failed int, details map[string]string) {
	duration := time.Since(r.startTime)

	if details == nil {
		details = make(map[string]string)
	}
	details["Succeeded"] = fmt.Sprintf("%d/%d", succeeded, succeeded+failed)
	details["Duration"] = duration.Round(time.Millisecond).String()

	_, _ = fmt.Fprintln(r.output)

	switch {
	case failed == 0:
		result := NewSuccessResult(r.config.Title+" complete", details)
		result.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, result.Render())
	case succeeded == 0:
		err := fmt.Errorf("all %d cameras failed", failed)
		result := NewFailureResult(r.config.Title+" failed", err, batchTroubleshooting())
		result.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, result.Render())
	default:
		result := NewWarningResult(r.config.Title+" partially complete", details)
		result.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, result.Render())
	}

	// Show raw responses in verbose mode
	if r.config.Verbose {
		for _, body := range r.responses {
			_, _ = fmt.Fprintln(r.output)
			resp := NewResponseOutput(body)
			resp.SetWidth(r.width)
			_, _ = fmt.Fprintln(r.output, resp.Render())
		}
	}
}

// batchTroubleshooting returns the default tips shown when every camera fails
func batchTroubleshooting() []string {
	return []string{
		"Verify the cameras are powered on and reachable (try pinging one)",
		"Check the username and password are correct for these cameras",
		"Confirm this machine is on the same subnet as the current IPs",
		"Run with --verbose to see the raw SOAP responses",
	}
}

// --- Simple helper functions for commands that don't need full BatchRunner ---

// PrintCommandHeader prints a styled command header
func PrintCommandHeader(title, command string, params map[string]string) {
	width := GetTerminalWidth()
	header := NewHeader(title, command, params)
	header.SetWidth(width)
	fmt.Println(header.Render())
	fmt.Println()
}

// PrintSuccess prints a styled success result
func PrintSuccess(title string, details map[string]string) {
	width := GetTerminalWidth()
	result := NewSuccessResult(title, details)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintFailure prints a styled failure result
func PrintFailure(title string, err error, troubleshooting []string) {
	width := GetTerminalWidth()
	result := NewFailureResult(title, err, troubleshooting)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintWarning prints a styled warning result
func PrintWarning(title string, details map[string]string) {
	width := GetTerminalWidth()
	result := NewWarningResult(title, details)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintResponseOutput prints a styled SOAP response box (for verbose mode)
func PrintResponseOutput(body string) {
	width := GetTerminalWidth()
	resp := NewResponseOutput(body)
	resp.SetWidth(width)
	fmt.Println()
	fmt.Println(resp.Render())
}

// PrintPleaseWait prints a styled "please wait" message for long-running operations.
// The message parameter should describe what's happening, e.g., "Waiting for camera reboot".
// The duration hint helps set user expectations, e.g., "up to 30 seconds".
func PrintPleaseWait(message string, durationHint string) {
	style := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		PaddingLeft(2)

	hintStyle := lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	line := style.Render("⏳ " + message)
	if durationHint != "" {
		line += " " + hintStyle.Render("(" + durationHint + ")")
	}
	line += style.Render("...")

	fmt.Println()
	fmt.Println(line)
	fmt.Println()
}
