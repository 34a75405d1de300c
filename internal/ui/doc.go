// Package ui provides terminal UI components for the onvifcfg CLI.
//
// This package uses Bubble Tea and Lipgloss to render polished terminal output
// for camera commands. The components follow a "run once and exit" pattern -
// they render output compellingly but don't require user interaction beyond
// explicit confirmation and password prompts.
//
// # Architecture
//
// The UI package provides five main component types:
//
//   - Header: Command banner showing operation name and parameters
//   - Progress: Progress bar with per-camera step list showing real-time status
//   - Result: Success/failure/warning boxes with styled information
//   - ResponseOutput: Raw SOAP response box for verbose mode
//   - Prompts: Hidden password entry and "I AGREE" confirmation
//
// These components are orchestrated by the BatchRunner, which manages the
// header → per-camera steps → result flow for a batch run.
//
// # Usage Pattern
//
// Batch commands use this package by:
//
//  1. Creating a BatchRunner with command metadata and per-camera step names
//  2. Calling Start() to print the header
//  3. Reporting each camera via the OnStep() callback as its request
//     starts and finishes
//  4. Calling Finish() with the success/failure tally
//
// Example:
//
//	runner := ui.NewBatchRunner(ui.BatchRunnerConfig{
//	    Title:        "Batch IP Migration",
//	    Command:      "onvifcfg apply",
//	    Params:       map[string]string{"Gateway": "192.168.1.1", "Prefix": "/24"},
//	    TotalCameras: len(targets),
//	    StepNames:    names,
//	    Verbose:      verbose,
//	})
//
//	runner.Start()
//	onStep := runner.OnStep()
//	// ... for each camera: onStep(i, name, ui.StepRunning, "")
//	//     then onStep(i, name, ui.StepComplete, "reboot needed")
//	runner.Finish(succeeded, failed, nil)
//
// # Logging Integration
//
// This package expects logging to be controlled via the ONVIFCFG_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set ONVIFCFG_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output.
//
// # Verbose Mode
//
// When --verbose is passed to camera commands, the ResponseOutput component
// displays raw SOAP responses in a styled box after the result. This is
// useful for diagnosing firmwares that answer with nonstandard fault shapes.
package ui
