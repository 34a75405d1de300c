package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "onvifcfg"
	if !strings.Contains(configDir, "onvifcfg") {
		t.Errorf("GetConfigDir() = %v, should contain 'onvifcfg'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with registry.yaml
	if filepath.Base(configPath) != "registry.yaml" {
		t.Errorf("GetConfigPath() should end with 'registry.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Cameras == nil {
		t.Error("NewRegistry().Cameras should not be nil")
	}

	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.DefaultTimeout != 10 {
		t.Errorf("NewRegistry().Preferences.DefaultTimeout = %v, want 10", reg.Preferences.DefaultTimeout)
	}

	if reg.Preferences.DefaultAuth.Username != "admin" {
		t.Errorf("NewRegistry().Preferences.DefaultAuth.Username = %v, want 'admin'", reg.Preferences.DefaultAuth.Username)
	}
}

func TestRegistryEnsureCamera(t *testing.T) {
	reg := NewRegistry()

	// First call should create camera
	camera1 := reg.EnsureCamera("DS-2CD2042-123456")
	if camera1 == nil {
		t.Fatal("EnsureCamera() returned nil")
	}

	// Second call should return same camera
	camera2 := reg.EnsureCamera("DS-2CD2042-123456")
	if camera1 != camera2 {
		t.Error("EnsureCamera() should return same instance for same serial")
	}

	// Different serial should create new camera
	camera3 := reg.EnsureCamera("DS-2CD2042-789012")
	if camera1 == camera3 {
		t.Error("EnsureCamera() should create new instance for different serial")
	}
}

func TestRegistryUpdateCameraLastSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.UpdateCameraLastSeen("123456", "192.168.1.64")
	after := time.Now()

	camera := reg.GetCamera("123456")
	if camera == nil {
		t.Fatal("Camera should exist after UpdateCameraLastSeen()")
	}

	if camera.LastIP != "192.168.1.64" {
		t.Errorf("LastIP = %v, want 192.168.1.64", camera.LastIP)
	}

	if camera.LastSeen.Before(before) || camera.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", camera.LastSeen, before, after)
	}
}

func TestRegistryRecordMigration_Success(t *testing.T) {
	reg := NewRegistry()

	reg.RecordMigration("123456", "192.168.1.64", "10.0.0.11", "success")

	camera := reg.GetCamera("123456")
	if camera == nil {
		t.Fatal("Camera should exist after RecordMigration()")
	}

	if camera.LastMigration == nil {
		t.Fatal("LastMigration should not be nil")
	}

	if camera.LastMigration.FromIP != "192.168.1.64" || camera.LastMigration.ToIP != "10.0.0.11" {
		t.Errorf("LastMigration = %+v", camera.LastMigration)
	}

	// A successful migration moves the last known IP forward
	if camera.LastIP != "10.0.0.11" {
		t.Errorf("LastIP = %v, want 10.0.0.11", camera.LastIP)
	}
}

func TestRegistryRecordMigration_Failure(t *testing.T) {
	reg := NewRegistry()
	reg.UpdateCameraLastSeen("123456", "192.168.1.64")

	reg.RecordMigration("123456", "192.168.1.64", "10.0.0.11", "auth_failure")

	camera := reg.GetCamera("123456")
	if camera.LastMigration == nil {
		t.Fatal("LastMigration should be recorded even on failure")
	}

	// A failed migration must not move the last known IP
	if camera.LastIP != "192.168.1.64" {
		t.Errorf("LastIP = %v, want 192.168.1.64 (unchanged)", camera.LastIP)
	}
}

func TestRegistrySetCameraNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetCameraNickname("123456", "Parking Lot East")

	camera := reg.GetCamera("123456")
	if camera == nil {
		t.Fatal("Camera should exist after SetCameraNickname()")
	}

	if camera.Nickname != "Parking Lot East" {
		t.Errorf("Nickname = %v, want 'Parking Lot East'", camera.Nickname)
	}
}

func TestRegistryYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	testPath := filepath.Join(tmpDir, "registry.yaml")

	reg := NewRegistry()
	reg.SetCameraNickname("123456", "Lobby")
	reg.SetCameraIdentity("123456", "Hikvision", "DS-2CD2042WD-I")
	reg.RecordMigration("123456", "192.168.1.64", "10.0.0.11", "success")

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	if err := os.WriteFile(testPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test registry: %v", err)
	}

	raw, err := os.ReadFile(testPath)
	if err != nil {
		t.Fatalf("Failed to read test registry: %v", err)
	}

	var loaded Registry
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("Failed to unmarshal registry: %v", err)
	}

	camera := loaded.GetCamera("123456")
	if camera == nil {
		t.Fatal("Camera should exist in loaded registry")
	}

	if camera.Nickname != "Lobby" {
		t.Errorf("Loaded nickname = %v, want 'Lobby'", camera.Nickname)
	}

	if camera.Model != "DS-2CD2042WD-I" {
		t.Errorf("Loaded model = %v, want DS-2CD2042WD-I", camera.Model)
	}

	if camera.LastMigration == nil || camera.LastMigration.ToIP != "10.0.0.11" {
		t.Errorf("Loaded migration = %+v", camera.LastMigration)
	}
}

func TestRegistrySaveGlobalAndReload(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("config dir override uses XDG environment variables")
	}
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	// Reset the singleton so it picks up the temporary config dir
	reg, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}

	reg.SetCameraNickname("123456", "Lobby")
	if err := SaveGlobal(); err != nil {
		t.Fatalf("SaveGlobal() error = %v", err)
	}

	// An in-memory change made after the save must not survive a reload
	reg.SetCameraNickname("123456", "Renamed but never saved")

	reloaded, err := ReloadRegistry()
	if err != nil {
		t.Fatalf("ReloadRegistry() error = %v", err)
	}

	camera := reloaded.GetCamera("123456")
	if camera == nil {
		t.Fatal("Camera should survive a save/reload cycle")
	}
	if camera.Nickname != "Lobby" {
		t.Errorf("Nickname = %v, want the saved 'Lobby'", camera.Nickname)
	}

	// The global accessor must hand back the reloaded instance
	same, err := GetGlobalRegistry()
	if err != nil {
		t.Fatalf("GetGlobalRegistry() error = %v", err)
	}
	if same != reloaded {
		t.Error("GetGlobalRegistry() should return the same instance as ReloadRegistry()")
	}
}

func TestRegistryNeverSerializesPasswords(t *testing.T) {
	reg := NewRegistry()
	reg.SetCameraNickname("123456", "Lobby")

	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	if strings.Contains(strings.ToLower(string(data)), "password") {
		t.Errorf("serialized registry mentions a password field:\n%s", data)
	}
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureCamera(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureCamera("123456")
	}
}
