package onvif

import (
	"fmt"
	"time"
)

// VerificationOptions configures how migration verification behaves
type VerificationOptions struct {
	// MaxRetries is the maximum number of verification attempts after the
	// first one
	// Default: 5
	MaxRetries int

	// InitialDelay is the delay before the first verification attempt.
	// Cameras need time to re-plumb their interface, and many reboot.
	// Default: 3s
	InitialDelay time.Duration

	// RetryDelay is the delay between retry attempts
	// Default: 2s
	RetryDelay time.Duration

	// UseExponentialBackoff doubles the retry delay after each attempt
	// (up to MaxRetryDelay)
	// Default: true
	UseExponentialBackoff bool

	// MaxRetryDelay is the cap on the backoff delay
	// Default: 10s
	MaxRetryDelay time.Duration
}

// DefaultVerificationOptions returns sensible defaults for verification
func DefaultVerificationOptions() *VerificationOptions {
	return &VerificationOptions{
		MaxRetries:            5,
		InitialDelay:          3 * time.Second,
		RetryDelay:            2 * time.Second,
		UseExponentialBackoff: true,
		MaxRetryDelay:         10 * time.Second,
	}
}

// VerificationResult contains the outcome of a migration verification
type VerificationResult struct {
	// Success indicates the camera answered at the new IP and reports it
	Success bool

	// Attempts is the number of attempts made
	Attempts int

	// Interfaces is the configuration retrieved from the camera at the
	// new address, when it answered
	Interfaces *NetworkInterfaceInfo

	// Error is the last error seen, or a mismatch summary on failure
	Error error
}

// VerifyMigration polls the camera at its NEW address until it answers
// GetNetworkInterfaces and reports the new IP among its configured
// addresses. A camera that answers at the new IP but reports a different
// address keeps being retried: some firmwares serve stale interface data
// for a few seconds after the change.
//
// The client passed in must already point at the new IP.
func VerifyMigration(client *Client, newIP string, opts *VerificationOptions) *VerificationResult {
	if opts == nil {
		opts = DefaultVerificationOptions()
	}

	result := &VerificationResult{}

	time.Sleep(opts.InitialDelay)

	currentDelay := opts.RetryDelay

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		result.Attempts++

		if attempt > 0 {
			time.Sleep(currentDelay)
			if opts.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > opts.MaxRetryDelay {
					currentDelay = opts.MaxRetryDelay
				}
			}
		}

		info, err := client.GetNetworkInterfaces()
		if err != nil {
			// Unreachable is expected while the camera reboots; keep polling
			result.Error = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		result.Interfaces = info

		if info.HasAddress(newIP) {
			result.Success = true
			result.Error = nil
			return result
		}

		result.Error = fmt.Errorf("attempt %d: camera answered at %s but reports addresses %v",
			attempt+1, newIP, info.Addresses)
	}

	if result.Error != nil {
		result.Error = fmt.Errorf("verification failed after %d attempts: %w",
			result.Attempts, result.Error)
	}
	return result
}
