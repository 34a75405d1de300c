package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sort"
	"time"

	"github.com/muurk/onvifcfg/internal/onvif"
)

// DefaultPlanFile is the plan filename looked up in the working directory
// when no --config flag is given.
const DefaultPlanFile = "camera_config.json"

// Plan is the JSON batch plan: the shared network settings plus the
// old-to-new address map. The password deliberately has no place here;
// it is prompted at run time and held in memory only.
type Plan struct {
	// Username for camera authentication; defaults to "admin"
	Username string `json:"username"`

	// Gateway is the IPv4 default gateway written to every camera
	Gateway string `json:"gateway"`

	// PrefixLength is the CIDR prefix for the new addresses; defaults to 24
	PrefixLength int `json:"prefix_length"`

	// InterfaceToken is the NIC token to reconfigure; defaults to "eth0"
	InterfaceToken string `json:"interface_token"`

	// TimeoutSeconds is the per-request deadline; defaults to 10
	TimeoutSeconds int `json:"timeout"`

	// Cameras maps each camera's current IP to its new IP
	Cameras map[string]string `json:"cameras"`
}

// DefaultPlan returns the plan defaults that file values are merged over.
func DefaultPlan() *Plan {
	return &Plan{
		Username:       "admin",
		PrefixLength:   24,
		InterfaceToken: "eth0",
		TimeoutSeconds: 10,
		Cameras:        make(map[string]string),
	}
}

// LoadPlan reads the batch plan from the given path, merging file values
// over the defaults: fields absent from the file keep their default value.
// An empty path loads DefaultPlanFile from the working directory.
func LoadPlan(path string) (*Plan, error) {
	if path == "" {
		path = DefaultPlanFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}

	// Unknown keys are tolerated, except a stored password: refuse to run
	// rather than teach users to keep credentials on disk
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}
	if _, found := raw["password"]; found {
		return nil, fmt.Errorf("plan file %s contains a password field: remove it, passwords are prompted at run time and never stored", path)
	}

	plan := DefaultPlan()
	if err := json.Unmarshal(data, plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}

	if plan.Cameras == nil {
		plan.Cameras = make(map[string]string)
	}

	return plan, nil
}

// NetworkConfig converts the plan's shared settings into the client
// configuration.
func (p *Plan) NetworkConfig() onvif.NetworkConfig {
	return onvif.NetworkConfig{
		Gateway:        p.Gateway,
		PrefixLength:   p.PrefixLength,
		InterfaceToken: p.InterfaceToken,
		Timeout:        time.Duration(p.TimeoutSeconds) * time.Second,
	}
}

// Targets returns the camera list in a stable order: ascending by current
// IP, compared octet by octet. JSON objects carry no order, so sorting is
// what makes batch runs reproducible.
func (p *Plan) Targets() []onvif.CameraTarget {
	targets := make([]onvif.CameraTarget, 0, len(p.Cameras))
	for cur, next := range p.Cameras {
		targets = append(targets, onvif.CameraTarget{CurrentIP: cur, NewIP: next})
	}
	sort.Slice(targets, func(i, j int) bool {
		return lessIP(targets[i].CurrentIP, targets[j].CurrentIP)
	})
	return targets
}

// Validate checks the plan's shared settings and every camera entry against
// the given credentials. Returns all problems found, warnings included.
// Credentials come in as an argument because the password is prompted at
// run time, never read from the plan file.
func (p *Plan) Validate(creds onvif.Credentials) []error {
	return onvif.ValidateBatch(p.NetworkConfig(), creds, p.Targets())
}

// lessIP orders two IPv4 strings numerically. Unparseable addresses sort
// after valid ones, by string as a tiebreak; validation reports them
// separately.
func lessIP(a, b string) bool {
	ipA := net.ParseIP(a)
	ipB := net.ParseIP(b)
	if ipA == nil || ipB == nil {
		if (ipA == nil) != (ipB == nil) {
			return ipB == nil
		}
		return a < b
	}
	return bytes.Compare(ipA.To16(), ipB.To16()) < 0
}
