package sensor

import "gonum.org/v1/gonum/floats"

// Derived scan-plan quantities. These assume a validated descriptor; call
// Validate first. The ray-cast pipeline consumes these instead of re-deriving
// geometry from the raw fields.

// ChannelElevations returns the vertical angle of each laser channel in
// degrees, evenly spaced from UpperFovLimit down to LowerFovLimit. A single
// channel aims at the upper limit.
func (c *LidarConfig) ChannelElevations() []float64 {
	if c.Channels <= 1 {
		return []float64{c.UpperFovLimit}
	}
	dst := make([]float64, c.Channels)
	return floats.Span(dst, c.UpperFovLimit, c.LowerFovLimit)
}

// PointsPerChannel returns how many points one channel emits during a single
// full revolution of the head.
func (c *LidarConfig) PointsPerChannel() float64 {
	return float64(c.PointsPerSecond) / (float64(c.Channels) * c.RotationFrequency)
}

// HorizontalStep returns the horizontal angle in degrees swept between two
// consecutive points of the same channel.
func (c *LidarConfig) HorizontalStep() float64 {
	return c.HorizonRange / c.PointsPerChannel()
}
