package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muurk/onvifcfg/internal/onvif"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "camera_config.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write plan file: %v", err)
	}
	return path
}

func TestLoadPlan_FullFile(t *testing.T) {
	path := writePlanFile(t, `{
		"username": "operator",
		"gateway": "10.0.0.1",
		"prefix_length": 16,
		"interface_token": "eth1",
		"timeout": 30,
		"cameras": {
			"192.168.1.64": "10.0.0.11",
			"192.168.1.65": "10.0.0.12"
		}
	}`)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan() error = %v", err)
	}

	if plan.Username != "operator" {
		t.Errorf("Username = %v, want operator", plan.Username)
	}

	if plan.Gateway != "10.0.0.1" {
		t.Errorf("Gateway = %v, want 10.0.0.1", plan.Gateway)
	}

	if plan.PrefixLength != 16 {
		t.Errorf("PrefixLength = %v, want 16", plan.PrefixLength)
	}

	if plan.InterfaceToken != "eth1" {
		t.Errorf("InterfaceToken = %v, want eth1", plan.InterfaceToken)
	}

	if plan.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %v, want 30", plan.TimeoutSeconds)
	}

	if len(plan.Cameras) != 2 {
		t.Errorf("Cameras has %d entries, want 2", len(plan.Cameras))
	}
}

func TestLoadPlan_DefaultsMergedOverMissingFields(t *testing.T) {
	path := writePlanFile(t, `{
		"gateway": "10.0.0.1",
		"cameras": {"192.168.1.64": "10.0.0.11"}
	}`)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan() error = %v", err)
	}

	if plan.Username != "admin" {
		t.Errorf("Username = %v, want default 'admin'", plan.Username)
	}

	if plan.PrefixLength != 24 {
		t.Errorf("PrefixLength = %v, want default 24", plan.PrefixLength)
	}

	if plan.InterfaceToken != "eth0" {
		t.Errorf("InterfaceToken = %v, want default eth0", plan.InterfaceToken)
	}

	if plan.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %v, want default 10", plan.TimeoutSeconds)
	}
}

func TestLoadPlan_UnknownFieldsTolerated(t *testing.T) {
	// Plans from older tool versions carry extra keys
	path := writePlanFile(t, `{
		"gateway": "10.0.0.1",
		"scan_ports": [80, 8080],
		"cameras": {"192.168.1.64": "10.0.0.11"}
	}`)

	if _, err := LoadPlan(path); err != nil {
		t.Errorf("LoadPlan() error = %v, want unknown fields ignored", err)
	}
}

func TestLoadPlan_RejectsStoredPassword(t *testing.T) {
	path := writePlanFile(t, `{
		"username": "admin",
		"password": "hunter2",
		"cameras": {"192.168.1.64": "10.0.0.11"}
	}`)

	_, err := LoadPlan(path)
	if err == nil {
		t.Fatal("LoadPlan() should refuse a plan file containing a password")
	}
}

func TestLoadPlan_MissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("LoadPlan() should return error for missing file")
	}
}

func TestLoadPlan_MalformedJSON(t *testing.T) {
	path := writePlanFile(t, `{"gateway": "10.0.0.1",`)

	_, err := LoadPlan(path)
	if err == nil {
		t.Error("LoadPlan() should return error for malformed JSON")
	}
}

func TestPlanNetworkConfig(t *testing.T) {
	plan := &Plan{
		Gateway:        "10.0.0.1",
		PrefixLength:   24,
		InterfaceToken: "eth0",
		TimeoutSeconds: 5,
	}

	cfg := plan.NetworkConfig()

	if cfg.Gateway != "10.0.0.1" || cfg.PrefixLength != 24 || cfg.InterfaceToken != "eth0" {
		t.Errorf("NetworkConfig() = %+v", cfg)
	}

	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestPlanTargets_StableOrder(t *testing.T) {
	plan := &Plan{Cameras: map[string]string{
		"192.168.1.100": "10.0.0.30",
		"192.168.1.9":   "10.0.0.10",
		"192.168.1.65":  "10.0.0.20",
	}}

	targets := plan.Targets()

	// Numeric octet order, not lexicographic: .9 before .65 before .100
	want := []string{"192.168.1.9", "192.168.1.65", "192.168.1.100"}
	for i, w := range want {
		if targets[i].CurrentIP != w {
			t.Errorf("targets[%d].CurrentIP = %v, want %v", i, targets[i].CurrentIP, w)
		}
	}
}

func TestPlanValidate(t *testing.T) {
	plan := &Plan{
		Username:       "admin",
		Gateway:        "10.0.0.1",
		PrefixLength:   24,
		InterfaceToken: "eth0",
		TimeoutSeconds: 10,
		Cameras: map[string]string{
			"192.168.1.64": "10.0.0.11",
			"192.168.1.65": "10.0.0.11", // duplicate new IP
		},
	}

	errs := plan.Validate(onvif.Credentials{Username: "admin", Password: "secret"})

	_, critical := onvif.SeparateWarningsAndErrors(errs)
	if len(critical) == 0 {
		t.Error("Validate() should flag duplicate new IPs")
	}
}
