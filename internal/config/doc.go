// Package config provides configuration management for the camera
// re-addressing tool.
//
// Two files are involved. The batch plan (camera_config.json, JSON, read
// from the working directory or a --config path) declares what a run should
// do: shared network settings and the old-to-new address map. The registry
// (registry.yaml, YAML, in the OS config directory) accumulates what the
// tool has learned across runs: camera nicknames, identities, last known
// addresses, and migration history.
//
// # Registry File Location
//
// The registry file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/onvifcfg/registry.yaml or $HOME/.config/onvifcfg/registry.yaml
//   - macOS: $HOME/.config/onvifcfg/registry.yaml
//   - Windows: %LOCALAPPDATA%\onvifcfg\registry.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores camera passwords. Plans carrying a
// password field are rejected outright, and the registry has no field to
// put one in. Credentials are always prompted when needed.
//
// # Usage Example
//
//	// Load the batch plan
//	plan, err := config.LoadPlan("camera_config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record outcomes in the registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry.RecordMigration("ABC123", "192.168.1.64", "10.0.0.11", "success")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
