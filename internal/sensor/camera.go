package sensor

import (
	"github.com/banshee-data/sensor-sim/internal/inifile"
	"github.com/banshee-data/sensor-sim/internal/monitoring"
)

// CameraConfig describes one simulated camera: image dimensions in pixels,
// horizontal field of view in degrees, and the post-processing effect applied
// to rendered frames.
type CameraConfig struct {
	Name string `json:"name"`
	Placement

	PostProcessing string  `json:"post_processing"`
	ImageSizeX     uint32  `json:"image_size_x"`
	ImageSizeY     uint32  `json:"image_size_y"`
	FOV            float64 `json:"fov_deg"`
}

// NewCameraConfig returns a descriptor with the stock scene-final defaults.
func NewCameraConfig(name string) *CameraConfig {
	return &CameraConfig{
		Name:           name,
		Placement:      defaultPlacement(),
		PostProcessing: "SceneFinal",
		ImageSizeX:     720,
		ImageSizeY:     512,
		FOV:            90.0,
	}
}

// SensorName implements Config.
func (c *CameraConfig) SensorName() string { return c.Name }

// SensorType implements Config.
func (c *CameraConfig) SensorType() string { return TypeCamera }

// Load populates the descriptor from the named section; absent keys keep the
// current values.
func (c *CameraConfig) Load(src *inifile.File, section string) error {
	if err := c.Placement.load(src, section); err != nil {
		return err
	}
	var err error
	c.PostProcessing = src.GetString(section, "PostProcessing", c.PostProcessing)
	if c.ImageSizeX, err = src.GetUInt(section, "ImageSizeX", c.ImageSizeX); err != nil {
		return err
	}
	if c.ImageSizeY, err = src.GetUInt(section, "ImageSizeY", c.ImageSizeY); err != nil {
		return err
	}
	if c.FOV, err = src.GetFloat(section, "FOV", c.FOV); err != nil {
		return err
	}
	return nil
}

// Validate coerces the image size to at least one pixel per axis and the field
// of view into (0, 180) degrees, warning on each correction.
func (c *CameraConfig) Validate() {
	if c.ImageSizeX < 1 {
		monitoring.Warnf("camera %q: ImageSizeX %d rejected, using 1", c.Name, c.ImageSizeX)
		c.ImageSizeX = 1
	}
	if c.ImageSizeY < 1 {
		monitoring.Warnf("camera %q: ImageSizeY %d rejected, using 1", c.Name, c.ImageSizeY)
		c.ImageSizeY = 1
	}
	if c.FOV <= 0 {
		monitoring.Warnf("camera %q: FOV %.2f rejected, using 1", c.Name, c.FOV)
		c.FOV = 1
	} else if c.FOV >= 180 {
		monitoring.Warnf("camera %q: FOV %.2f rejected, using 179", c.Name, c.FOV)
		c.FOV = 179
	}
}

// Log dumps every field in declaration order.
func (c *CameraConfig) Log() {
	monitoring.Logf("camera sensor %q:", c.Name)
	c.Placement.log()
	monitoring.Logf("  PostProcessing = %s", c.PostProcessing)
	monitoring.Logf("  ImageSizeX = %d", c.ImageSizeX)
	monitoring.Logf("  ImageSizeY = %d", c.ImageSizeY)
	monitoring.Logf("  FOV = %.2f", c.FOV)
}

// AcceptVisitor implements Config.
func (c *CameraConfig) AcceptVisitor(v Visitor) error {
	return v.VisitCamera(c)
}
