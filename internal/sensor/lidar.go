package sensor

import (
	"github.com/banshee-data/sensor-sim/internal/inifile"
	"github.com/banshee-data/sensor-sim/internal/monitoring"
)

// minRangeCm is the smallest sensing distance a descriptor may end up with
// after validation. A zero or negative range would make every ray degenerate.
const minRangeCm = 1.0

// minRotationHz is the floor applied to non-positive rotation frequencies.
const minRotationHz = 1.0

// LidarConfig describes one rotating-LiDAR instance: how many lasers it
// stacks, how far and how fast it scans, and how its output is degraded to
// resemble a real unit. Distances are centimeters, angles degrees.
type LidarConfig struct {
	Name string `json:"name"`
	Placement

	// Channels is the number of lasers stacked vertically.
	Channels uint32 `json:"channels"`

	// Range is the maximum sensing distance in centimeters.
	Range float64 `json:"range_cm"`

	// PointsPerSecond is the total emitted by all channels combined.
	PointsPerSecond uint32 `json:"points_per_second"`

	// RotationFrequency is the full-revolution rate of the head in Hz.
	RotationFrequency float64 `json:"rotation_frequency_hz"`

	// UpperFovLimit and LowerFovLimit bound the vertical field of view,
	// counted from horizontal; positive is above the horizon.
	UpperFovLimit float64 `json:"upper_fov_limit_deg"`
	LowerFovLimit float64 `json:"lower_fov_limit_deg"`

	// ShowDebugPoints renders laser hits inside the simulator.
	ShowDebugPoints bool `json:"show_debug_points"`

	// GaussianNoise is the standard deviation of the distance measurement, in
	// the same unit as Range.
	GaussianNoise float64 `json:"gaussian_noise"`

	// DropOutPattern controls the fraction of points intentionally dropped,
	// in [0, 1]. 1 keeps every point.
	DropOutPattern float64 `json:"drop_out_pattern"`

	// LidarType selects the scan-pattern variant.
	LidarType uint32 `json:"lidar_type"`

	// DebugFlag is a bitmask enabling debug instrumentation channels.
	DebugFlag uint32 `json:"debug_flag"`

	// HorizonRange is the total horizontal field of view in degrees, up to a
	// full 360 sweep.
	HorizonRange float64 `json:"horizon_range_deg"`
}

// NewLidarConfig returns a descriptor with the stock 32-channel defaults.
func NewLidarConfig(name string) *LidarConfig {
	return &LidarConfig{
		Name:              name,
		Placement:         defaultPlacement(),
		Channels:          32,
		Range:             5000.0,
		PointsPerSecond:   56000,
		RotationFrequency: 10.0,
		UpperFovLimit:     10.0,
		LowerFovLimit:     -30.0,
		ShowDebugPoints:   false,
		GaussianNoise:     0.0,
		DropOutPattern:    1.0,
		LidarType:         1,
		DebugFlag:         2016,
		HorizonRange:      360.0,
	}
}

// SensorName implements Config.
func (c *LidarConfig) SensorName() string { return c.Name }

// SensorType implements Config.
func (c *LidarConfig) SensorType() string { return TypeLidar }

// Load populates the descriptor from the named section. Absent keys keep the
// current values; the first malformed value aborts the load.
//
// Key spellings match the settings-file convention, which differs from the
// field names for the FOV limits (UpperFOVLimit) and dropout (DropOffPattern).
func (c *LidarConfig) Load(src *inifile.File, section string) error {
	if err := c.Placement.load(src, section); err != nil {
		return err
	}
	var err error
	if c.Channels, err = src.GetUInt(section, "Channels", c.Channels); err != nil {
		return err
	}
	if c.Range, err = src.GetFloat(section, "Range", c.Range); err != nil {
		return err
	}
	if c.PointsPerSecond, err = src.GetUInt(section, "PointsPerSecond", c.PointsPerSecond); err != nil {
		return err
	}
	if c.RotationFrequency, err = src.GetFloat(section, "RotationFrequency", c.RotationFrequency); err != nil {
		return err
	}
	if c.UpperFovLimit, err = src.GetFloat(section, "UpperFOVLimit", c.UpperFovLimit); err != nil {
		return err
	}
	if c.LowerFovLimit, err = src.GetFloat(section, "LowerFOVLimit", c.LowerFovLimit); err != nil {
		return err
	}
	if c.ShowDebugPoints, err = src.GetBool(section, "ShowDebugPoints", c.ShowDebugPoints); err != nil {
		return err
	}
	if c.GaussianNoise, err = src.GetFloat(section, "GaussianNoise", c.GaussianNoise); err != nil {
		return err
	}
	if c.DropOutPattern, err = src.GetFloat(section, "DropOffPattern", c.DropOutPattern); err != nil {
		return err
	}
	if c.LidarType, err = src.GetUInt(section, "LidarType", c.LidarType); err != nil {
		return err
	}
	if c.DebugFlag, err = src.GetUInt(section, "DebugFlag", c.DebugFlag); err != nil {
		return err
	}
	if c.HorizonRange, err = src.GetFloat(section, "HorizonRange", c.HorizonRange); err != nil {
		return err
	}
	return nil
}

// Validate coerces every out-of-range field to its nearest safe value and
// emits one warning per correction. The descriptor always ends up renderable;
// the sensor pipeline downstream performs no further checks.
func (c *LidarConfig) Validate() {
	if c.Channels < 1 {
		monitoring.Warnf("lidar %q: Channels %d rejected, using 1", c.Name, c.Channels)
		c.Channels = 1
	}
	if c.Range <= 0 {
		monitoring.Warnf("lidar %q: Range %.2f rejected, using %.2f", c.Name, c.Range, minRangeCm)
		c.Range = minRangeCm
	}
	if c.PointsPerSecond < c.Channels {
		monitoring.Warnf("lidar %q: PointsPerSecond %d below channel count, using %d",
			c.Name, c.PointsPerSecond, c.Channels)
		c.PointsPerSecond = c.Channels
	}
	if c.RotationFrequency <= 0 {
		monitoring.Warnf("lidar %q: RotationFrequency %.2f rejected, using %.2f",
			c.Name, c.RotationFrequency, minRotationHz)
		c.RotationFrequency = minRotationHz
	}
	if c.UpperFovLimit < c.LowerFovLimit {
		monitoring.Warnf("lidar %q: UpperFovLimit %.2f below LowerFovLimit %.2f, swapping",
			c.Name, c.UpperFovLimit, c.LowerFovLimit)
		c.UpperFovLimit, c.LowerFovLimit = c.LowerFovLimit, c.UpperFovLimit
	}
	if c.GaussianNoise < 0 {
		monitoring.Warnf("lidar %q: GaussianNoise %.2f rejected, using 0", c.Name, c.GaussianNoise)
		c.GaussianNoise = 0
	}
	if c.DropOutPattern < 0 {
		monitoring.Warnf("lidar %q: DropOutPattern %.2f rejected, clamping to 0", c.Name, c.DropOutPattern)
		c.DropOutPattern = 0
	} else if c.DropOutPattern > 1 {
		monitoring.Warnf("lidar %q: DropOutPattern %.2f rejected, clamping to 1", c.Name, c.DropOutPattern)
		c.DropOutPattern = 1
	}
	// A degenerate horizontal sweep falls back to a full revolution rather
	// than a sliver: a stopped sweep has no meaningful nearest width.
	if c.HorizonRange <= 0 {
		monitoring.Warnf("lidar %q: HorizonRange %.2f rejected, using 360", c.Name, c.HorizonRange)
		c.HorizonRange = 360
	} else if c.HorizonRange > 360 {
		monitoring.Warnf("lidar %q: HorizonRange %.2f rejected, clamping to 360", c.Name, c.HorizonRange)
		c.HorizonRange = 360
	}
}

// Log dumps every field in declaration order.
func (c *LidarConfig) Log() {
	monitoring.Logf("lidar sensor %q:", c.Name)
	c.Placement.log()
	monitoring.Logf("  Channels = %d", c.Channels)
	monitoring.Logf("  Range = %.2f", c.Range)
	monitoring.Logf("  PointsPerSecond = %d", c.PointsPerSecond)
	monitoring.Logf("  RotationFrequency = %.2f", c.RotationFrequency)
	monitoring.Logf("  UpperFovLimit = %.2f", c.UpperFovLimit)
	monitoring.Logf("  LowerFovLimit = %.2f", c.LowerFovLimit)
	monitoring.Logf("  ShowDebugPoints = %t", c.ShowDebugPoints)
	monitoring.Logf("  GaussianNoise = %.2f", c.GaussianNoise)
	monitoring.Logf("  DropOutPattern = %.2f", c.DropOutPattern)
	monitoring.Logf("  LidarType = %d", c.LidarType)
	monitoring.Logf("  DebugFlag = %d", c.DebugFlag)
	monitoring.Logf("  HorizonRange = %.2f", c.HorizonRange)
}

// AcceptVisitor implements Config.
func (c *LidarConfig) AcceptVisitor(v Visitor) error {
	return v.VisitLidar(c)
}
