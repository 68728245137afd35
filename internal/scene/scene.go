// Package scene loads the sensor suite of a simulation scene from an INI
// settings file and drives each descriptor through its load, validate, log
// lifecycle before construction.
//
// Settings layout:
//
//	[Sensors]
//	Sensors=FrontLidar,RoofCamera
//
//	[Sensor/FrontLidar]
//	SensorType=LIDAR_RAY_CAST
//	Channels=64
//	...
//
// Sensors without a section, or with keys missing from their section, run on
// descriptor defaults.
package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/sensor-sim/internal/inifile"
	"github.com/banshee-data/sensor-sim/internal/sensor"
)

const (
	indexSection  = "Sensors"
	indexKey      = "Sensors"
	sectionPrefix = "Sensor/"
	typeKey       = "SensorType"
)

// Scene is the fully resolved sensor suite of one settings file. All
// descriptors have been validated; consumers may read them without further
// checks but must not mutate them.
type Scene struct {
	Name    string
	Sensors []sensor.Config
}

// Load reads and resolves the scene at path. The scene name is the file name
// without extension.
func Load(path string) (*Scene, error) {
	src, err := inifile.Load(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return FromFile(name, src)
}

// FromFile resolves a scene from an already parsed settings source. Each
// listed sensor is constructed with defaults, loaded from its section,
// validated, and logged, in that order.
func FromFile(name string, src *inifile.File) (*Scene, error) {
	s := &Scene{Name: name}
	for _, sensorName := range sensorNames(src) {
		cfg, err := resolveSensor(src, sensorName)
		if err != nil {
			return nil, err
		}
		s.Sensors = append(s.Sensors, cfg)
	}
	return s, nil
}

// Build dispatches every descriptor through v, stopping on the first
// construction failure.
func (s *Scene) Build(v sensor.Visitor) error {
	for _, cfg := range s.Sensors {
		if err := cfg.AcceptVisitor(v); err != nil {
			return fmt.Errorf("building sensor %q: %w", cfg.SensorName(), err)
		}
	}
	return nil
}

func sensorNames(src *inifile.File) []string {
	var names []string
	for _, n := range strings.Split(src.GetString(indexSection, indexKey, ""), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func resolveSensor(src *inifile.File, name string) (sensor.Config, error) {
	section := sectionPrefix + name

	var cfg sensor.Config
	switch typ := src.GetString(section, typeKey, sensor.TypeLidar); typ {
	case sensor.TypeLidar:
		cfg = sensor.NewLidarConfig(name)
	case sensor.TypeCamera:
		cfg = sensor.NewCameraConfig(name)
	default:
		return nil, fmt.Errorf("sensor %q: unknown %s %q", name, typeKey, typ)
	}

	if err := cfg.Load(src, section); err != nil {
		return nil, fmt.Errorf("sensor %q: %w", name, err)
	}
	cfg.Validate()
	cfg.Log()
	return cfg, nil
}
