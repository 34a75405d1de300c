package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for cameras and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Cameras     map[string]*Camera `yaml:"cameras,omitempty"` // Keyed by camera serial number
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Camera represents user-defined metadata for a single camera.
// This is keyed by the camera's serial number in the Registry.
type Camera struct {
	Nickname      string         `yaml:"nickname,omitempty"`       // User-friendly name
	Manufacturer  string         `yaml:"manufacturer,omitempty"`   // From GetDeviceInformation
	Model         string         `yaml:"model,omitempty"`          // From GetDeviceInformation
	LastIP        string         `yaml:"last_ip,omitempty"`        // Last known IP address
	LastSeen      time.Time      `yaml:"last_seen,omitempty"`      // Last successful contact
	LastMigration *MigrationMeta `yaml:"last_migration,omitempty"` // Most recent IP change
}

// MigrationMeta records the most recent IP change applied to a camera.
// This is stored for reference; the camera itself is the source of truth.
type MigrationMeta struct {
	FromIP string    `yaml:"from_ip"`
	ToIP   string    `yaml:"to_ip"`
	Time   time.Time `yaml:"time"`
	Status string    `yaml:"status"` // outcome name, e.g. "success"
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultTimeout int        `yaml:"default_timeout"`        // Request timeout in seconds
	DefaultAuth    *AuthPrefs `yaml:"default_auth,omitempty"` // Default authentication preferences
}

// AuthPrefs represents default authentication preferences.
// Note: Passwords are NEVER stored - they are always prompted from the user.
type AuthPrefs struct {
	Username string `yaml:"username"` // Default username (e.g., "admin")
	// Password is NEVER stored in config file for security reasons
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Cameras: make(map[string]*Camera),
		Preferences: &Preferences{
			DefaultTimeout: 10,
			DefaultAuth: &AuthPrefs{
				Username: "admin",
			},
		},
	}
}

// GetCamera retrieves camera metadata by serial number.
// Returns nil if the camera doesn't exist in the registry.
func (r *Registry) GetCamera(serial string) *Camera {
	return r.Cameras[serial]
}

// EnsureCamera ensures a camera entry exists in the registry.
// If the camera doesn't exist, creates a new entry with default values.
// Returns the camera entry (existing or newly created).
func (r *Registry) EnsureCamera(serial string) *Camera {
	if r.Cameras == nil {
		r.Cameras = make(map[string]*Camera)
	}

	if camera, exists := r.Cameras[serial]; exists {
		return camera
	}

	camera := &Camera{}
	r.Cameras[serial] = camera
	return camera
}

// UpdateCameraLastSeen updates the last seen timestamp and IP for a camera.
func (r *Registry) UpdateCameraLastSeen(serial, ip string) {
	camera := r.EnsureCamera(serial)
	camera.LastSeen = time.Now()
	camera.LastIP = ip
}

// RecordMigration records an IP change outcome for a camera and moves its
// last known IP forward when the change was accepted.
func (r *Registry) RecordMigration(serial, fromIP, toIP, status string) {
	camera := r.EnsureCamera(serial)
	camera.LastMigration = &MigrationMeta{
		FromIP: fromIP,
		ToIP:   toIP,
		Time:   time.Now(),
		Status: status,
	}
	if status == "success" {
		camera.LastIP = toIP
		camera.LastSeen = time.Now()
	}
}

// SetCameraNickname sets a user-friendly nickname for a camera.
func (r *Registry) SetCameraNickname(serial, nickname string) {
	camera := r.EnsureCamera(serial)
	camera.Nickname = nickname
}

// SetCameraIdentity stores the identity fields retrieved from the camera.
func (r *Registry) SetCameraIdentity(serial, manufacturer, model string) {
	camera := r.EnsureCamera(serial)
	camera.Manufacturer = manufacturer
	camera.Model = model
}

// FindByIP returns the serial of the camera last seen at the given IP.
// Returns false if no known camera matches; IPs are not unique over time,
// so the most recently seen match wins.
func (r *Registry) FindByIP(ip string) (string, bool) {
	var serial string
	var seen time.Time
	for s, camera := range r.Cameras {
		if camera.LastIP == ip && (serial == "" || camera.LastSeen.After(seen)) {
			serial = s
			seen = camera.LastSeen
		}
	}
	return serial, serial != ""
}
