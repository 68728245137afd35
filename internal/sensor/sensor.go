// Package sensor defines the descriptors for the simulated vehicle sensors.
//
// A descriptor is built with defaults, populated from an INI settings section
// via Load, coerced into a physically plausible state via Validate, and then
// handed read-only to whichever subsystem constructs the runtime sensor. That
// lifecycle is strictly one way: a descriptor is never reloaded or revalidated
// once in use; changing parameters means building a new one.
package sensor

import (
	"github.com/banshee-data/sensor-sim/internal/inifile"
	"github.com/banshee-data/sensor-sim/internal/monitoring"
)

// Sensor type identifiers as they appear in settings files.
const (
	TypeLidar  = "LIDAR_RAY_CAST"
	TypeCamera = "CAMERA"
)

// Visitor receives a fully resolved descriptor and builds the matching runtime
// sensor. One method per concrete descriptor type; AcceptVisitor on the
// descriptor selects the right one.
type Visitor interface {
	VisitLidar(*LidarConfig) error
	VisitCamera(*CameraConfig) error
}

// Config is the contract shared by all sensor descriptors.
type Config interface {
	// SensorName returns the scene-unique name of this sensor instance.
	SensorName() string

	// SensorType returns the settings-file type identifier.
	SensorType() string

	// Load populates fields from the named section of src. Keys absent from
	// the section leave the current (default) value in place; a present but
	// malformed value is returned as an error.
	Load(src *inifile.File, section string) error

	// Validate coerces every out-of-range field to its nearest safe value,
	// emitting one warning per correction. It never fails: the descriptor
	// always ends up renderable. Validating an already valid descriptor
	// changes nothing and emits nothing.
	Validate()

	// Log writes every field and its current value to the diagnostic sink in
	// declaration order. Intended for experiment reproducibility records.
	Log()

	// AcceptVisitor routes this descriptor to the visitor method matching its
	// concrete type.
	AcceptVisitor(v Visitor) error
}

// Placement is the sensor mount pose relative to the vehicle: position in
// meters, rotation in degrees.
type Placement struct {
	PositionX     float64 `json:"position_x"`
	PositionY     float64 `json:"position_y"`
	PositionZ     float64 `json:"position_z"`
	RotationPitch float64 `json:"rotation_pitch"`
	RotationRoll  float64 `json:"rotation_roll"`
	RotationYaw   float64 `json:"rotation_yaw"`
}

// defaultPlacement is the stock roof-front mount.
func defaultPlacement() Placement {
	return Placement{PositionX: 0.2, PositionY: 0.0, PositionZ: 1.3}
}

func (p *Placement) load(src *inifile.File, section string) error {
	var err error
	if p.PositionX, err = src.GetFloat(section, "PositionX", p.PositionX); err != nil {
		return err
	}
	if p.PositionY, err = src.GetFloat(section, "PositionY", p.PositionY); err != nil {
		return err
	}
	if p.PositionZ, err = src.GetFloat(section, "PositionZ", p.PositionZ); err != nil {
		return err
	}
	if p.RotationPitch, err = src.GetFloat(section, "RotationPitch", p.RotationPitch); err != nil {
		return err
	}
	if p.RotationRoll, err = src.GetFloat(section, "RotationRoll", p.RotationRoll); err != nil {
		return err
	}
	if p.RotationYaw, err = src.GetFloat(section, "RotationYaw", p.RotationYaw); err != nil {
		return err
	}
	return nil
}

func (p *Placement) log() {
	monitoring.Logf("  Position = (%.2f, %.2f, %.2f)", p.PositionX, p.PositionY, p.PositionZ)
	monitoring.Logf("  Rotation = (pitch %.2f, roll %.2f, yaw %.2f)", p.RotationPitch, p.RotationRoll, p.RotationYaw)
}
