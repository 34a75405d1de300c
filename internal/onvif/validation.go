package onvif

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// ValidateIPv4 validates that s is a literal IPv4 address (dotted quad).
// Hostnames and IPv6 addresses are rejected: targets are always IPv4
// literals, so no DNS resolution ever happens.
func ValidateIPv4(s string) error {
	if s == "" {
		return NewValidationError("IPv4 address cannot be empty")
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil || !strings.Contains(s, ".") {
		return NewValidationError(fmt.Sprintf("invalid IPv4 address: %q", s))
	}
	return nil
}

// ValidatePrefixLength validates a CIDR prefix length.
// Valid range: 0-32. Out-of-range values are rejected before any envelope is
// built so a bad prefix never reaches a camera.
func ValidatePrefixLength(prefix int) error {
	if prefix < 0 || prefix > 32 {
		return NewValidationError(fmt.Sprintf("prefix length must be 0-32, got %d", prefix))
	}
	return nil
}

// ValidateInterfaceToken validates an ONVIF interface token.
func ValidateInterfaceToken(token string) error {
	if token == "" {
		return NewValidationError("interface token cannot be empty")
	}
	if strings.ContainsAny(token, " \t\n\r") {
		return NewValidationError("interface token contains whitespace")
	}
	return nil
}

// ValidateCredentials validates that both username and password are present.
func ValidateCredentials(creds Credentials) error {
	if creds.Username == "" {
		return NewValidationError("username cannot be empty")
	}
	if creds.Password == "" {
		return NewValidationError("password cannot be empty")
	}
	return nil
}

// ValidateTarget validates a single camera target.
// Returns a slice of validation errors (empty if valid).
func ValidateTarget(t CameraTarget) []error {
	var errors []error

	if err := ValidateIPv4(t.CurrentIP); err != nil {
		errors = append(errors, fmt.Errorf("current IP: %w", err))
	}
	if err := ValidateIPv4(t.NewIP); err != nil {
		errors = append(errors, fmt.Errorf("new IP: %w", err))
	}
	if t.CurrentIP != "" && t.CurrentIP == t.NewIP {
		errors = append(errors, NewValidationError(
			fmt.Sprintf("warning: new IP is identical to current IP (%s)", t.CurrentIP)))
	}

	return errors
}

// ValidateNetworkConfig validates the shared batch parameters.
// Returns a slice of validation errors (empty if valid).
func ValidateNetworkConfig(cfg NetworkConfig) []error {
	var errors []error

	if err := ValidateIPv4(cfg.Gateway); err != nil {
		errors = append(errors, fmt.Errorf("gateway: %w", err))
	}
	if err := ValidatePrefixLength(cfg.PrefixLength); err != nil {
		errors = append(errors, err)
	}
	if cfg.InterfaceToken == "" {
		// Empty means the runner asks the camera for its token
		errors = append(errors, NewValidationError(
			"warning: no interface token set, the camera-reported token (or eth0) will be used"))
	} else if err := ValidateInterfaceToken(cfg.InterfaceToken); err != nil {
		errors = append(errors, err)
	}
	if cfg.Timeout <= 0 {
		errors = append(errors, NewValidationError(
			fmt.Sprintf("timeout must be positive, got %s", cfg.Timeout)))
	} else if cfg.Timeout < time.Second {
		errors = append(errors, NewValidationError(
			fmt.Sprintf("warning: timeout %s is very short for camera firmware", cfg.Timeout)))
	}

	return errors
}

// CheckGatewayReachable warns when the gateway would not sit inside the
// subnet formed by newIP/prefix. Cameras accept such configs but lose their
// default route, which is the classic way to strand a device mid-migration.
func CheckGatewayReachable(newIP, gateway string, prefix int) error {
	ip := net.ParseIP(newIP)
	gw := net.ParseIP(gateway)
	if ip == nil || gw == nil || prefix < 0 || prefix > 32 {
		return nil // caught by the field validators
	}
	mask := net.CIDRMask(prefix, 32)
	network := &net.IPNet{IP: ip.Mask(mask), Mask: mask}
	if !network.Contains(gw) {
		return NewValidationError(fmt.Sprintf(
			"warning: gateway %s is outside %s/%d - the camera may lose its default route",
			gateway, newIP, prefix))
	}
	return nil
}

// ValidateBatch validates the shared config plus every target.
// Returns a slice of validation errors (empty if valid). Warnings are
// included; use SeparateWarningsAndErrors to split them out.
func ValidateBatch(cfg NetworkConfig, creds Credentials, targets []CameraTarget) []error {
	var allErrors []error

	allErrors = append(allErrors, ValidateNetworkConfig(cfg)...)

	if err := ValidateCredentials(creds); err != nil {
		allErrors = append(allErrors, err)
	}

	seen := make(map[string]string, len(targets))
	for i, t := range targets {
		for _, err := range ValidateTarget(t) {
			allErrors = append(allErrors, fmt.Errorf("camera %d (%s): %w", i+1, t.CurrentIP, err))
		}
		if prev, dup := seen[t.NewIP]; dup && t.NewIP != "" {
			allErrors = append(allErrors, NewValidationError(fmt.Sprintf(
				"cameras %s and %s are both assigned new IP %s", prev, t.CurrentIP, t.NewIP)))
		}
		seen[t.NewIP] = t.CurrentIP

		if err := CheckGatewayReachable(t.NewIP, cfg.Gateway, cfg.PrefixLength); err != nil {
			allErrors = append(allErrors, fmt.Errorf("camera %d (%s): %w", i+1, t.CurrentIP, err))
		}
	}

	return allErrors
}

// FormatValidationErrors formats a slice of validation errors into a
// user-friendly message.
func FormatValidationErrors(errors []error) string {
	if len(errors) == 0 {
		return "No validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Configuration validation failed with %d error(s):\n", len(errors)))
	for i, err := range errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// IsWarning checks if a validation error is a warning (non-fatal).
// Warnings have error messages starting with "warning:".
func IsWarning(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return strings.HasPrefix(devErr.Message, "warning:")
	}
	return strings.Contains(err.Error(), "warning:")
}

// SeparateWarningsAndErrors separates validation errors into warnings and
// errors. Warnings are surfaced to the operator but do not block the batch;
// errors stop the run before any network call.
func SeparateWarningsAndErrors(errors []error) (warnings []error, criticalErrors []error) {
	for _, err := range errors {
		if IsWarning(err) {
			warnings = append(warnings, err)
		} else {
			criticalErrors = append(criticalErrors, err)
		}
	}
	return warnings, criticalErrors
}
