package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/onvifcfg/internal/config"
	"github.com/muurk/onvifcfg/internal/logging"
	"github.com/muurk/onvifcfg/internal/onvif"
	"github.com/muurk/onvifcfg/internal/ui"
)

// Command flags
var (
	planFile   string
	username   string
	gateway    string
	prefixLen  int
	ifaceToken string
	timeoutSec int
	assumeYes  bool
	verify     bool
	dhcpFirst  bool
	verbose    bool
	logDir     string
)

func init() {
	// Common flags for camera commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Camera username (default from plan or \"admin\")")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "Per-request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Show raw SOAP responses")

	// Add subcommands directly to root
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(setIPCmd)
	rootCmd.AddCommand(dhcpCmd)
	rootCmd.AddCommand(showCmd)
}

// applyCmd runs the batch from the JSON plan
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the IP changes from the batch plan",
	Long: `Apply the network changes described in the JSON batch plan.

The plan maps each camera's current IP to its new IP and carries the
shared settings (gateway, prefix length, interface token, timeout).
Cameras are updated strictly one at a time, in ascending order of their
current IP; a failure on one camera never stops the rest of the batch.

The camera password is prompted at run time and held in memory only.
Every run writes a timestamped audit log (ip_change_*.log) recording
the outcome for each camera. Passwords never appear in it.`,
	Example: `  # Apply camera_config.json from the working directory
  onvifcfg apply

  # Apply a specific plan without the confirmation prompt
  onvifcfg apply --config lab_migration.json --yes

  # Apply and poll each camera at its new address afterwards
  onvifcfg apply --verify

  # Override the plan's gateway and show raw SOAP responses
  onvifcfg apply --gateway 10.0.1.1 --verbose`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&planFile, "config", "", "Path to the JSON batch plan (default \"camera_config.json\")")
	applyCmd.Flags().StringVar(&gateway, "gateway", "", "Default gateway for the new addresses (overrides plan)")
	applyCmd.Flags().IntVar(&prefixLen, "prefix", 0, "CIDR prefix length for the new addresses (overrides plan)")
	applyCmd.Flags().StringVar(&ifaceToken, "interface", "", "ONVIF interface token to reconfigure (overrides plan)")
	applyCmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")
	applyCmd.Flags().BoolVar(&verify, "verify", false, "Poll each camera at its new address after the change")
	applyCmd.Flags().BoolVar(&dhcpFirst, "dhcp-first", true, "Disable DHCP before assigning the static address when the camera reports DHCP on")
	applyCmd.Flags().StringVar(&logDir, "log-dir", ".", "Directory for the run audit log")
}

func runApply(cmd *cobra.Command, args []string) error {
	plan, err := config.LoadPlan(planFile)
	if err != nil {
		return err
	}

	// CLI overrides win over plan values
	if username != "" {
		plan.Username = username
	}
	if gateway != "" {
		plan.Gateway = gateway
	}
	if prefixLen > 0 {
		plan.PrefixLength = prefixLen
	}
	if ifaceToken != "" {
		plan.InterfaceToken = ifaceToken
	}
	if timeoutSec > 0 {
		plan.TimeoutSeconds = timeoutSec
	}

	targets := plan.Targets()
	if len(targets) == 0 {
		return fmt.Errorf("plan has no cameras (add entries to the \"cameras\" map)")
	}

	creds, err := promptCredentials(plan.Username)
	if err != nil {
		return err
	}

	cfg := plan.NetworkConfig()
	return runBatch("onvifcfg apply", "Batch IP Migration", cfg, creds, targets)
}

// setIPCmd changes a single camera
var setIPCmd = &cobra.Command{
	Use:   "set-ip <current-ip> <new-ip>",
	Short: "Change the IP address of a single camera",
	Long: `Assign a new static IPv4 address to one camera.

This is the single-camera form of 'apply': the same authentication,
validation, and outcome classification, without a plan file. The
gateway flag is required because the camera needs a route after the
change.`,
	Example: `  # Move a camera from its factory address
  onvifcfg set-ip 192.168.1.64 10.0.1.64 --gateway 10.0.1.1

  # Non-default prefix, verify the camera comes up at the new address
  onvifcfg set-ip 192.168.1.64 172.16.0.20 --gateway 172.16.0.1 --prefix 16 --verify`,
	Args: cobra.ExactArgs(2),
	RunE: runSetIP,
}

func init() {
	setIPCmd.Flags().StringVar(&gateway, "gateway", "", "Default gateway for the new address (required)")
	setIPCmd.Flags().IntVar(&prefixLen, "prefix", 24, "CIDR prefix length for the new address")
	setIPCmd.Flags().StringVar(&ifaceToken, "interface", "", "ONVIF interface token to reconfigure (default: query the camera)")
	setIPCmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")
	setIPCmd.Flags().BoolVar(&verify, "verify", false, "Poll the camera at its new address after the change")
	setIPCmd.Flags().BoolVar(&dhcpFirst, "dhcp-first", true, "Disable DHCP before assigning the static address when the camera reports DHCP on")
	setIPCmd.Flags().StringVar(&logDir, "log-dir", ".", "Directory for the run audit log")
	_ = setIPCmd.MarkFlagRequired("gateway")
}

func runSetIP(cmd *cobra.Command, args []string) error {
	creds, err := promptCredentials(username)
	if err != nil {
		return err
	}

	cfg := onvif.NetworkConfig{
		Gateway:        gateway,
		PrefixLength:   prefixLen,
		InterfaceToken: ifaceToken,
		Timeout:        requestTimeout(),
	}
	targets := []onvif.CameraTarget{{CurrentIP: args[0], NewIP: args[1]}}

	return runBatch("onvifcfg set-ip", "IP Migration", cfg, creds, targets)
}

// runBatch is the shared execution path for apply and set-ip: validate,
// preview, confirm, run with UI progress, record the registry, report.
func runBatch(command, title string, cfg onvif.NetworkConfig, creds onvif.Credentials, targets []onvif.CameraTarget) error {
	// Validate everything before any network traffic
	warnings, critical := onvif.SeparateWarningsAndErrors(
		onvif.ValidateBatch(cfg, creds, targets))
	if len(critical) > 0 {
		return fmt.Errorf("plan validation failed:\n%s",
			onvif.FormatValidationErrors(critical))
	}
	if len(warnings) > 0 {
		details := make(map[string]string, len(warnings))
		for i, w := range warnings {
			details[fmt.Sprintf("%d", i+1)] = w.Error()
		}
		ui.PrintWarning("Plan validation", details)
		fmt.Println()
	}

	// Reinitialize logging with the per-run audit log file
	if err := logging.InitializeWithFile(os.Getenv(logging.LogLevelEnvVar), logDir); err != nil {
		return fmt.Errorf("failed to set up run log: %w", err)
	}

	// Preview the planned changes
	if len(targets) == 1 {
		fmt.Println(onvif.FormatChange(targets[0], cfg))
	} else {
		fmt.Printf("Planned changes (gateway %s, prefix /%d):\n", cfg.Gateway, cfg.PrefixLength)
		for _, target := range targets {
			fmt.Println("  " + target.String())
		}
		fmt.Println()
	}

	if !assumeYes && !ui.MigrationConfirmation(len(targets)) {
		return fmt.Errorf("aborted by user")
	}

	stepNames := make([]string, len(targets))
	for i, target := range targets {
		stepNames[i] = target.String()
	}

	batchUI := ui.NewBatchRunner(ui.BatchRunnerConfig{
		Title:   title,
		Command: command,
		Params: map[string]string{
			"Cameras":   fmt.Sprintf("%d", len(targets)),
			"Gateway":   cfg.Gateway,
			"Prefix":    fmt.Sprintf("/%d", cfg.PrefixLength),
			"Interface": cfg.InterfaceToken,
			"Timeout":   cfg.Timeout.String(),
		},
		TotalCameras: len(targets),
		StepNames:    stepNames,
		Verbose:      verbose,
	})

	runner := onvif.NewRunner(cfg, creds)
	runner.DisableDHCPFirst = dhcpFirst
	runner.Verify = verify
	runner.CaptureResponses = verbose
	runner.OnStep = bridgeSteps(batchUI)

	batchUI.Start()
	results := runner.Run(targets)

	recordMigrations(results)

	succeeded := onvif.CountSuccesses(results)
	failed := len(results) - succeeded

	details := map[string]string{}
	if logging.RunLogPath() != "" {
		details["Log"] = logging.RunLogPath()
	}
	batchUI.Finish(succeeded, failed, details)

	if failed > 0 {
		// Plain-text record for copy-paste into tickets
		fmt.Println()
		fmt.Println(onvif.FormatSummary(results))
		return fmt.Errorf("%d of %d camera(s) failed; see %s",
			failed, len(results), logging.RunLogPath())
	}
	return nil
}

// bridgeSteps adapts the runner's progress callback to the UI's step lines
func bridgeSteps(batchUI *ui.BatchRunner) onvif.StepCallback {
	onStep := batchUI.OnStep()
	return func(index, total int, target onvif.CameraTarget, result *onvif.OperationResult) {
		stepNumber := index + 1
		if result == nil {
			onStep(stepNumber, target.String(), ui.StepRunning, "")
			return
		}

		batchUI.AddResponse(result.Response)

		status := ui.StepComplete
		message := ""
		switch {
		case !result.OK():
			status = ui.StepFailed
			message = result.Detail
		case result.RebootNeeded:
			message = "reboot needed"
		}
		onStep(stepNumber, target.String(), status, message)
	}
}

// recordMigrations updates the registry for cameras we already know at
// their current addresses. Best effort: a registry problem never fails
// the run that already happened.
func recordMigrations(results []onvif.OperationResult) {
	registry, err := config.GetGlobalRegistry()
	if err != nil {
		logging.Warn("Could not load camera registry", zap.Error(err))
		return
	}

	updated := false
	for _, result := range results {
		serial, ok := registry.FindByIP(result.Target.CurrentIP)
		if !ok {
			continue
		}
		registry.RecordMigration(serial, result.Target.CurrentIP,
			result.Target.NewIP, result.Status.String())
		updated = true
	}

	if updated {
		if err := config.SaveGlobal(); err != nil {
			logging.Warn("Could not save camera registry", zap.Error(err))
		}
	}
}

// dhcpCmd toggles DHCP on a camera's interface
var dhcpCmd = &cobra.Command{
	Use:   "dhcp <ip> <on|off>",
	Short: "Enable or disable DHCP on a camera",
	Long: `Enable or disable DHCP on a camera's network interface.

Turning DHCP off is occasionally needed as a separate step: some
firmwares keep renewing a lease and silently discard static address
assignments until DHCP is disabled. The interface token is queried
from the camera unless --interface is given.`,
	Example: `  # Disable DHCP ahead of a static assignment
  onvifcfg dhcp 192.168.1.64 off

  # Hand a camera back to the DHCP server
  onvifcfg dhcp 10.0.1.64 on`,
	Args: cobra.ExactArgs(2),
	RunE: runDHCP,
}

func init() {
	dhcpCmd.Flags().StringVar(&ifaceToken, "interface", "", "ONVIF interface token (default: query the camera)")
}

func runDHCP(cmd *cobra.Command, args []string) error {
	ip := args[0]
	var enable bool
	switch strings.ToLower(args[1]) {
	case "on":
		enable = true
	case "off":
		enable = false
	default:
		return fmt.Errorf("invalid DHCP mode %q (use on or off)", args[1])
	}

	if err := onvif.ValidateIPv4(ip); err != nil {
		return err
	}

	mode := "off"
	if enable {
		mode = "on"
	}

	creds, err := promptCredentials(username)
	if err != nil {
		return err
	}

	ui.PrintCommandHeader("DHCP Configuration",
		fmt.Sprintf("onvifcfg dhcp %s %s", ip, mode),
		map[string]string{
			"Camera":  ip,
			"DHCP":    mode,
			"Timeout": requestTimeout().String(),
		})

	client := onvif.NewClient(ip, creds)
	client.SetTimeout(requestTimeout())

	token := ifaceToken
	if token == "" {
		info, err := client.GetNetworkInterfaces()
		if err != nil {
			return fmt.Errorf("failed to query interfaces on %s: %w", ip, err)
		}
		token = info.TokenOrDefault()
		ui.PrintStyledLine("Current state: " + info.Summary())
	}

	ui.PrintStyledLine(fmt.Sprintf("Setting DHCP %s on %s (interface %s)...", mode, ip, token))

	if err := client.SetDHCP(token, enable); err != nil {
		ui.PrintFailure("DHCP change", err,
			[]string{onvif.GetTroubleshootingHint(err)})
		if verbose {
			ui.PrintResponseOutput(client.LastResponse())
		}
		return fmt.Errorf("DHCP change failed on %s", ip)
	}

	ui.PrintSuccess("DHCP change", map[string]string{
		"Camera":    ip,
		"Interface": token,
		"DHCP":      mode,
	})
	if verbose {
		ui.PrintResponseOutput(client.LastResponse())
	}
	return nil
}

// showCmd displays a camera's identity and network configuration
var showCmd = &cobra.Command{
	Use:   "show <ip>",
	Short: "Show a camera's device and network information",
	Long: `Display a camera's identity (manufacturer, model, firmware, serial)
and its current network interfaces: tokens, addresses, prefix lengths,
and DHCP state.

Successful lookups update the local camera registry so later runs can
match this camera by its address.`,
	Example: `  # Inspect a camera before planning a migration
  onvifcfg show 192.168.1.64

  # With a longer timeout for slow cameras
  onvifcfg show 192.168.1.64 --timeout 30`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ip := args[0]
	if err := onvif.ValidateIPv4(ip); err != nil {
		return err
	}

	creds, err := promptCredentials(username)
	if err != nil {
		return err
	}

	p := ui.NewPrinter(nil)
	p.PrintHeader("Camera Information", "onvifcfg show "+ip, map[string]string{
		"Camera":  ip,
		"Timeout": requestTimeout().String(),
	})

	client := onvif.NewClient(ip, creds)
	client.SetTimeout(requestTimeout())

	ui.PrintPleaseWait("Querying "+ip, "a few seconds")

	info, err := client.GetDeviceInformation()
	if err != nil {
		p.PrintError("Device query", err,
			[]string{onvif.GetTroubleshootingHint(err)})
		return fmt.Errorf("failed to query %s", ip)
	}

	interfaces, err := client.GetNetworkInterfaces()
	if err != nil {
		p.PrintError("Interface query", err,
			[]string{onvif.GetTroubleshootingHint(err)})
		return fmt.Errorf("failed to query %s", ip)
	}

	out := info.FormatDeviceInfo() + "\n" + interfaces.FormatInterfaces() + "\n"
	if err := ui.RenderOnce(out); err != nil {
		// Fall back to plain output when the terminal refuses the renderer
		ui.PrintStyled(out)
	}

	if verbose {
		p.PrintResponse(client.LastResponse())
	}

	rememberCamera(info, ip)
	return nil
}

// rememberCamera records a successfully queried camera in the registry
func rememberCamera(info *onvif.DeviceInformation, ip string) {
	if info.SerialNumber == "" {
		return
	}
	registry, err := config.GetGlobalRegistry()
	if err != nil {
		logging.Warn("Could not load camera registry", zap.Error(err))
		return
	}
	registry.SetCameraIdentity(info.SerialNumber, info.Manufacturer, info.Model)
	registry.UpdateCameraLastSeen(info.SerialNumber, ip)
	if err := config.SaveGlobal(); err != nil {
		logging.Warn("Could not save camera registry", zap.Error(err))
	}
}

// promptCredentials resolves the username and prompts for the password.
// The password lives in memory for the duration of the run and nowhere else.
func promptCredentials(user string) (onvif.Credentials, error) {
	if user == "" {
		user = "admin"
	}
	password, err := ui.PromptPassword(user)
	if err != nil {
		return onvif.Credentials{}, err
	}
	return onvif.Credentials{Username: user, Password: password}, nil
}

// requestTimeout returns the per-request deadline from the --timeout flag
func requestTimeout() time.Duration {
	if timeoutSec > 0 {
		return time.Duration(timeoutSec) * time.Second
	}
	return onvif.DefaultTimeout
}
