// Command scan-preview renders a quick HTML chart of a lidar descriptor's
// scan pattern: one marker per channel at its elevation angle, with the
// derived point budget in the subtitle. Useful for eyeballing a settings file
// before committing to a long simulation run.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/sensor-sim/internal/inifile"
	"github.com/banshee-data/sensor-sim/internal/sensor"
)

var (
	scenePath  = flag.String("scene", "scene.ini", "Path to the scene settings file")
	sensorName = flag.String("sensor", "", "Name of the lidar sensor to preview (section Sensor/<name>)")
	outPath    = flag.String("out", "scan-preview.html", "Output HTML file")
)

func run() error {
	if *sensorName == "" {
		return fmt.Errorf("missing required -sensor flag")
	}

	src, err := inifile.Load(*scenePath)
	if err != nil {
		return err
	}

	cfg := sensor.NewLidarConfig(*sensorName)
	if err := cfg.Load(src, "Sensor/"+*sensorName); err != nil {
		return err
	}
	cfg.Validate()

	elevations := cfg.ChannelElevations()
	xs := make([]int, len(elevations))
	data := make([]opts.ScatterData, len(elevations))
	for i, angle := range elevations {
		xs[i] = i
		data[i] = opts.ScatterData{Value: angle, SymbolSize: 8}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Scan pattern: %s", cfg.Name),
			Subtitle: fmt.Sprintf("%d channels, %.0f points/channel/rev, %.3f deg step over %.0f deg sweep",
				cfg.Channels, cfg.PointsPerChannel(), cfg.HorizontalStep(), cfg.HorizonRange),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "channel"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "elevation (deg)"}),
	)
	scatter.SetXAxis(xs).AddSeries("elevation", data)

	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *outPath, err)
	}
	defer f.Close()

	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	log.Printf("wrote %s", *outPath)
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Printf("scan-preview: %v", err)
		os.Exit(1)
	}
}
