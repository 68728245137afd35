// Command sensor-sim resolves the sensor suite of a simulation scene: it
// loads the settings file, validates and logs every descriptor, records the
// resolved configuration in the sensor registry, and optionally serves the
// resulting suite as JSON for inspection.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/banshee-data/sensor-sim/internal/registry"
	"github.com/banshee-data/sensor-sim/internal/scene"
	"github.com/banshee-data/sensor-sim/internal/sensor"
)

var (
	scenePath = flag.String("scene", "scene.ini", "Path to the scene settings file")
	dbFile    = flag.String("db", "sensors.db", "Path to the sensor registry database")
	listen    = flag.String("listen", "", "Optional HTTP listen address for the sensor inspection API")
)

// suiteBuilder records each validated descriptor and prints a construction
// summary. It stands in for the renderer-side sensor factory, which consumes
// the same derived quantities.
type suiteBuilder struct {
	reg   *registry.Registry
	scene string
	built int
}

func (b *suiteBuilder) VisitLidar(cfg *sensor.LidarConfig) error {
	rec, err := b.reg.Record(b.scene, cfg)
	if err != nil {
		return err
	}
	elevations := cfg.ChannelElevations()
	log.Printf("lidar %q (%s): %d channels from %.1f to %.1f deg, %.0f points/channel/rev, %.3f deg step",
		cfg.Name, rec.SensorID, cfg.Channels,
		elevations[0], elevations[len(elevations)-1],
		cfg.PointsPerChannel(), cfg.HorizontalStep())
	b.built++
	return nil
}

func (b *suiteBuilder) VisitCamera(cfg *sensor.CameraConfig) error {
	rec, err := b.reg.Record(b.scene, cfg)
	if err != nil {
		return err
	}
	log.Printf("camera %q (%s): %dx%d, %.1f deg fov, %s",
		cfg.Name, rec.SensorID, cfg.ImageSizeX, cfg.ImageSizeY, cfg.FOV, cfg.PostProcessing)
	b.built++
	return nil
}

func run() error {
	s, err := scene.Load(*scenePath)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	log.Printf("scene %q: %d sensors", s.Name, len(s.Sensors))

	reg, err := registry.Open(*dbFile)
	if err != nil {
		return err
	}
	defer reg.Close()

	builder := &suiteBuilder{reg: reg, scene: s.Name}
	if err := s.Build(builder); err != nil {
		return err
	}
	log.Printf("recorded %d sensors for scene %q", builder.built, s.Name)

	if *listen == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sensors", func(w http.ResponseWriter, r *http.Request) {
		records, err := reg.ListByScene(s.Name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			log.Printf("encoding sensor list: %v", err)
		}
	})
	log.Printf("serving sensor inspection API on %s", *listen)
	return http.ListenAndServe(*listen, mux)
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Printf("sensor-sim: %v", err)
		os.Exit(1)
	}
}
