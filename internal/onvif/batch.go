package onvif

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/onvifcfg/internal/logging"
)

// StepCallback is invoked as the runner works through a batch, once before
// each camera starts and once when its result is known. Used by the UI to
// render progress; a nil callback is valid.
type StepCallback func(index, total int, target CameraTarget, result *OperationResult)

// Runner applies one network configuration change to a list of cameras,
// strictly in order. A shared NetworkConfig and Credentials apply to every
// target; per-camera state lives only in the result slice.
type Runner struct {
	// Config is the shared network configuration (gateway, prefix,
	// interface token, timeout)
	Config NetworkConfig

	// Credentials authenticate every request; held in memory only
	Credentials Credentials

	// DisableDHCPFirst turns DHCP off before assigning the static
	// address when the camera reports DHCP enabled. Some firmwares
	// silently ignore a static assignment otherwise.
	DisableDHCPFirst bool

	// Verify polls each camera at its new address after the change and
	// downgrades the result detail when the camera never shows up there
	Verify bool

	// VerifyOptions tunes the verification polling; nil means defaults
	VerifyOptions *VerificationOptions

	// CaptureResponses copies a snippet of each camera's last raw SOAP
	// response into its result, for verbose display
	CaptureResponses bool

	// OnStep is the optional progress callback
	OnStep StepCallback

	// newClient builds the per-camera client; replaced in tests
	newClient func(ip string, creds Credentials) *Client
}

// NewRunner creates a batch runner for the given shared configuration
func NewRunner(cfg NetworkConfig, creds Credentials) *Runner {
	return &Runner{
		Config:      cfg,
		Credentials: creds,
		newClient:   NewClient,
	}
}

// Run processes every target in order and returns one result per target,
// in the same order. A failure on one camera never stops the batch and
// never panics; it is recorded and the runner moves on. Credentials are
// never included in results or logs.
func (r *Runner) Run(targets []CameraTarget) []OperationResult {
	runID := uuid.New().String()
	logging.Info("Starting batch run",
		zap.String("run_id", runID),
		zap.Int("cameras", len(targets)),
		zap.String("gateway", r.Config.Gateway),
		zap.Int("prefix_length", r.Config.PrefixLength))

	results := make([]OperationResult, 0, len(targets))
	for i, target := range targets {
		if r.OnStep != nil {
			r.OnStep(i, len(targets), target, nil)
		}

		result := r.runOne(target)

		logging.LogResult(runID, target.CurrentIP, target.NewIP,
			result.Status.String(), result.Detail, result.Duration)

		if r.OnStep != nil {
			r.OnStep(i, len(targets), target, &result)
		}
		results = append(results, result)
	}

	logging.Info("Batch run complete",
		zap.String("run_id", runID),
		zap.Int("succeeded", CountSuccesses(results)),
		zap.Int("failed", len(results)-CountSuccesses(results)))
	return results
}

// runOne applies the change to a single camera. All error paths collapse
// into the result's status and detail.
func (r *Runner) runOne(target CameraTarget) OperationResult {
	start := time.Now()
	result := OperationResult{Target: target}

	var client *Client
	finish := func(status OperationStatus, detail string) OperationResult {
		result.Status = status
		result.Detail = detail
		result.Duration = time.Since(start)
		if r.CaptureResponses && client != nil {
			result.Response = client.LastResponse()
		}
		return result
	}

	if r.newClient == nil {
		r.newClient = NewClient
	}

	_, hard := SeparateWarningsAndErrors(ValidateTarget(target))
	if len(hard) > 0 {
		return finish(StatusValidationFailed, hard[0].Error())
	}

	client = r.newClient(target.CurrentIP, r.Credentials)
	if r.Config.Timeout > 0 {
		client.SetTimeout(r.Config.Timeout)
	}

	ifaceToken := r.Config.InterfaceToken

	// Query the camera whenever the token is unknown, not just ahead of a
	// DHCP change: the camera-reported token wins over the "eth0" default.
	if ifaceToken == "" || r.DisableDHCPFirst {
		info, err := client.GetNetworkInterfaces()
		if err != nil {
			// Non-fatal: proceed with the configured token and let the
			// real change report the definitive outcome
			logging.Debug("Pre-change interface query failed",
				zap.String("camera", target.CurrentIP),
				zap.Error(err))
		} else {
			if ifaceToken == "" {
				ifaceToken = info.TokenOrDefault()
			}
			if r.DisableDHCPFirst && info.DHCPEnabled {
				if err := client.SetDHCP(ifaceToken, false); err != nil {
					logging.Debug("Disabling DHCP failed, continuing",
						zap.String("camera", target.CurrentIP),
						zap.Error(err))
				}
			}
		}
	}

	cfg := r.Config
	cfg.InterfaceToken = ifaceToken
	if cfg.InterfaceToken == "" {
		cfg.InterfaceToken = DefaultInterfaceToken
	}

	rebootNeeded, err := client.SetNetworkInterfaces(cfg, target.NewIP)
	if err != nil {
		status, detail := StatusFromError(err)
		return finish(status, detail)
	}
	result.RebootNeeded = rebootNeeded

	detail := "command accepted"
	if rebootNeeded {
		detail = "command accepted, reboot needed"
	}

	if r.Verify {
		verifier := r.newClient(target.NewIP, r.Credentials)
		if r.Config.Timeout > 0 {
			verifier.SetTimeout(r.Config.Timeout)
		}
		vr := VerifyMigration(verifier, target.NewIP, r.VerifyOptions)
		if vr.Success {
			detail = fmt.Sprintf("%s, verified at %s after %d attempt(s)",
				detail, target.NewIP, vr.Attempts)
		} else {
			detail = fmt.Sprintf("%s, not yet answering at %s (%v)",
				detail, target.NewIP, vr.Error)
		}
	}

	return finish(StatusSuccess, detail)
}

// CountSuccesses returns the number of results whose command was accepted
func CountSuccesses(results []OperationResult) int {
	n := 0
	for _, r := range results {
		if r.OK() {
			n++
		}
	}
	return n
}
