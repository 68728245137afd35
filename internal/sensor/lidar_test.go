package sensor

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/sensor-sim/internal/inifile"
	"github.com/banshee-data/sensor-sim/internal/monitoring"
)

func loadSection(t *testing.T, body string) *inifile.File {
	t.Helper()
	f, err := inifile.LoadBytes([]byte(body))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	return f
}

func TestLidarDefaults(t *testing.T) {
	got := NewLidarConfig("test")
	want := &LidarConfig{
		Name:              "test",
		Placement:         Placement{PositionX: 0.2, PositionZ: 1.3},
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
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

// An empty section must leave every field at its default.
func TestLoadEmptySectionKeepsDefaults(t *testing.T) {
	src := loadSection(t, "[Sensor/Empty]\n")

	got := NewLidarConfig("empty")
	if err := got.Load(src, "Sensor/Empty"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(NewLidarConfig("empty"), got); diff != "" {
		t.Errorf("empty section changed fields (-want +got):\n%s", diff)
	}
}

func TestLoadFullSection(t *testing.T) {
	src := loadSection(t, `
[Sensor/Roof]
Channels=64
Range=10000
PointsPerSecond=100000
RotationFrequency=20
UpperFOVLimit=15
LowerFOVLimit=-25
`)

	rec, restore := monitoring.Capture()
	defer restore()

	cfg := NewLidarConfig("Roof")
	if err := cfg.Load(src, "Sensor/Roof"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Validate()

	if len(rec.Warnings()) != 0 {
		t.Errorf("valid section produced warnings: %v", rec.Warnings())
	}
	if cfg.Channels != 64 || cfg.Range != 10000 || cfg.PointsPerSecond != 100000 {
		t.Errorf("loaded values wrong: %+v", cfg)
	}
	if cfg.RotationFrequency != 20 || cfg.UpperFovLimit != 15 || cfg.LowerFovLimit != -25 {
		t.Errorf("loaded values wrong: %+v", cfg)
	}
	// Absent keys keep defaults.
	if cfg.HorizonRange != 360 {
		t.Errorf("HorizonRange = %v, want default 360", cfg.HorizonRange)
	}
	if cfg.GaussianNoise != 0 {
		t.Errorf("GaussianNoise = %v, want default 0", cfg.GaussianNoise)
	}
}

func TestLoadMalformedValue(t *testing.T) {
	src := loadSection(t, "[Sensor/Bad]\nChannels=many\n")

	cfg := NewLidarConfig("Bad")
	err := cfg.Load(src, "Sensor/Bad")
	if err == nil {
		t.Fatal("expected error for malformed Channels")
	}
	if !strings.Contains(err.Error(), "Channels") {
		t.Errorf("error %q should name the key", err)
	}
}

func TestValidateValidDescriptorIsSilent(t *testing.T) {
	rec, restore := monitoring.Capture()
	defer restore()

	cfg := NewLidarConfig("quiet")
	before := *cfg
	cfg.Validate()

	if len(rec.Warnings()) != 0 {
		t.Errorf("default descriptor produced warnings: %v", rec.Warnings())
	}
	if diff := cmp.Diff(&before, cfg); diff != "" {
		t.Errorf("Validate changed a valid descriptor (-want +got):\n%s", diff)
	}
}

// Validate must be idempotent: a second pass over corrected values changes
// nothing and warns about nothing.
func TestValidateIdempotent(t *testing.T) {
	cfg := NewLidarConfig("twice")
	cfg.Range = -100
	cfg.Channels = 0
	cfg.DropOutPattern = 3.5
	cfg.HorizonRange = 999
	cfg.UpperFovLimit, cfg.LowerFovLimit = -5, 10

	_, restore := monitoring.Capture()
	cfg.Validate()
	restore()

	rec, restore := monitoring.Capture()
	defer restore()
	after := *cfg
	cfg.Validate()

	if len(rec.Warnings()) != 0 {
		t.Errorf("second Validate warned: %v", rec.Warnings())
	}
	if diff := cmp.Diff(&after, cfg); diff != "" {
		t.Errorf("second Validate changed fields (-want +got):\n%s", diff)
	}
}

func TestValidateNegativeRange(t *testing.T) {
	rec, restore := monitoring.Capture()
	defer restore()

	cfg := NewLidarConfig("short")
	cfg.Range = -250

	cfg.Validate()

	if cfg.Range <= 0 {
		t.Errorf("Range = %v, want > 0", cfg.Range)
	}
	warnings := rec.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want exactly 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Range") {
		t.Errorf("warning %q should name Range", warnings[0])
	}
}

func TestValidateInvertedFov(t *testing.T) {
	cfg := NewLidarConfig("inverted")
	cfg.UpperFovLimit = -5
	cfg.LowerFovLimit = 10

	rec, restore := monitoring.Capture()
	defer restore()
	cfg.Validate()

	if cfg.UpperFovLimit < cfg.LowerFovLimit {
		t.Errorf("FOV still inverted: upper %v < lower %v", cfg.UpperFovLimit, cfg.LowerFovLimit)
	}
	if cfg.UpperFovLimit != 10 || cfg.LowerFovLimit != -5 {
		t.Errorf("swap expected: got upper %v, lower %v", cfg.UpperFovLimit, cfg.LowerFovLimit)
	}
	if len(rec.Warnings()) != 1 {
		t.Errorf("got %d warnings, want 1", len(rec.Warnings()))
	}
}

func TestValidateFieldClamps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LidarConfig)
		verify func(t *testing.T, c *LidarConfig)
	}{
		{
			name:   "zero channels",
			mutate: func(c *LidarConfig) { c.Channels = 0 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.Channels != 1 {
					t.Errorf("Channels = %d, want 1", c.Channels)
				}
			},
		},
		{
			name:   "points below channels",
			mutate: func(c *LidarConfig) { c.Channels = 128; c.PointsPerSecond = 10 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.PointsPerSecond != 128 {
					t.Errorf("PointsPerSecond = %d, want 128", c.PointsPerSecond)
				}
			},
		},
		{
			name:   "non-positive rotation",
			mutate: func(c *LidarConfig) { c.RotationFrequency = 0 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.RotationFrequency <= 0 {
					t.Errorf("RotationFrequency = %v, want > 0", c.RotationFrequency)
				}
			},
		},
		{
			name:   "negative noise",
			mutate: func(c *LidarConfig) { c.GaussianNoise = -1.5 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.GaussianNoise != 0 {
					t.Errorf("GaussianNoise = %v, want 0", c.GaussianNoise)
				}
			},
		},
		{
			name:   "dropout above one",
			mutate: func(c *LidarConfig) { c.DropOutPattern = 1.5 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.DropOutPattern != 1.0 {
					t.Errorf("DropOutPattern = %v, want 1.0", c.DropOutPattern)
				}
			},
		},
		{
			name:   "dropout below zero",
			mutate: func(c *LidarConfig) { c.DropOutPattern = -0.25 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.DropOutPattern != 0 {
					t.Errorf("DropOutPattern = %v, want 0", c.DropOutPattern)
				}
			},
		},
		{
			name:   "horizon above full sweep",
			mutate: func(c *LidarConfig) { c.HorizonRange = 400 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.HorizonRange != 360 {
					t.Errorf("HorizonRange = %v, want 360", c.HorizonRange)
				}
			},
		},
		{
			name:   "non-positive horizon",
			mutate: func(c *LidarConfig) { c.HorizonRange = -10 },
			verify: func(t *testing.T, c *LidarConfig) {
				if c.HorizonRange != 360 {
					t.Errorf("HorizonRange = %v, want 360", c.HorizonRange)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, restore := monitoring.Capture()
			defer restore()

			cfg := NewLidarConfig("clamp")
			tt.mutate(cfg)
			cfg.Validate()
			tt.verify(t, cfg)
			if len(rec.Warnings()) != 1 {
				t.Errorf("got %d warnings, want 1: %v", len(rec.Warnings()), rec.Warnings())
			}
		})
	}
}

// Log must dump one line per field, in declaration order.
func TestLidarLogOrder(t *testing.T) {
	rec, restore := monitoring.Capture()
	defer restore()

	NewLidarConfig("dump").Log()

	want := []string{
		"lidar sensor", "Position", "Rotation",
		"Channels", "Range", "PointsPerSecond", "RotationFrequency",
		"UpperFovLimit", "LowerFovLimit", "ShowDebugPoints", "GaussianNoise",
		"DropOutPattern", "LidarType", "DebugFlag", "HorizonRange",
	}
	got := rec.Infos()
	if len(got) != len(want) {
		t.Fatalf("got %d log lines, want %d: %v", len(got), len(want), got)
	}
	for i, field := range want {
		if !strings.Contains(got[i], field) {
			t.Errorf("line %d = %q, want it to mention %s", i, got[i], field)
		}
	}
}

type fakeBuilder struct {
	lidars  []*LidarConfig
	cameras []*CameraConfig
}

func (b *fakeBuilder) VisitLidar(c *LidarConfig) error {
	b.lidars = append(b.lidars, c)
	return nil
}

func (b *fakeBuilder) VisitCamera(c *CameraConfig) error {
	b.cameras = append(b.cameras, c)
	return nil
}

func TestAcceptVisitorDispatch(t *testing.T) {
	b := &fakeBuilder{}
	lidar := NewLidarConfig("l")
	cam := NewCameraConfig("c")

	var cfgs = []Config{lidar, cam}
	for _, c := range cfgs {
		if err := c.AcceptVisitor(b); err != nil {
			t.Fatalf("AcceptVisitor: %v", err)
		}
	}

	if len(b.lidars) != 1 || b.lidars[0] != lidar {
		t.Errorf("lidar not dispatched: %v", b.lidars)
	}
	if len(b.cameras) != 1 || b.cameras[0] != cam {
		t.Errorf("camera not dispatched: %v", b.cameras)
	}
}
