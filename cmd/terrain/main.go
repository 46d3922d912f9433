// Command terrain runs the full pipeline over one elevation input file:
// grid construction, infrastructure placement, moisture simulation, and
// artifact export, with optional preview renders.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Mewyer/innagrika/internal/config"
	"github.com/Mewyer/innagrika/internal/export"
	"github.com/Mewyer/innagrika/internal/forecast"
	"github.com/Mewyer/innagrika/internal/preview"
	"github.com/Mewyer/innagrika/internal/terrain"
)

var (
	inputPath   = flag.String("input", "", "Path to the elevation input JSON (matrix or point cloud)")
	configPath  = flag.String("config", "", "Optional JSON run config")
	outDir      = flag.String("out", "", "Output directory for artifacts (overrides config)")
	steps       = flag.Int("steps", -1, "Simulation steps (overrides config; -1 keeps config value)")
	resolution  = flag.Int("resolution", 0, "Scattered-path grid resolution (overrides config)")
	heightScale = flag.Float64("height-scale", 0, "Matrix elevation multiplier (overrides config)")
	withPreview = flag.Bool("preview", false, "Also render heatmap PNGs and a 3D surface page")
)

func main() {
	flag.Parse()
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: terrain -input heights.json [-config run.json] [-out dir] [-steps n] [-preview]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("terrain: %v", err)
	}

	builderCfg := cfg.BuilderConfig()
	if *resolution > 0 {
		builderCfg.Resolution = *resolution
	}
	if *heightScale > 0 {
		builderCfg.HeightScale = *heightScale
	}
	runSteps := cfg.RunSteps()
	if *steps >= 0 {
		runSteps = *steps
	}
	dir := cfg.RunOutputDir()
	if *outDir != "" {
		dir = *outDir
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("terrain: read input: %v", err)
	}
	in, err := terrain.DecodeInput(raw)
	if err != nil {
		log.Fatalf("terrain: %v", err)
	}
	log.Printf("terrain: input resolved as %s", in.Kind)

	p := terrain.NewPipeline(builderCfg, cfg.SimConfig())
	if err := p.Run(in, runSteps); err != nil {
		log.Fatalf("terrain: %v", err)
	}
	log.Printf("terrain: grid %dx%d, %d drainage / %d irrigation points, %d steps",
		p.Grid.Rows, p.Grid.Cols, len(p.Plan.Drainage), len(p.Plan.Irrigation), runSteps)
	if p.DegenerateRange {
		log.Printf("terrain: warning: degenerate elevation range, moisture init used raw elevations")
	}

	results := export.Write(p.Grid, p.Plan, dir)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	field := p.Field()
	meanMoisture := 0.0
	for _, v := range field {
		meanMoisture += v
	}
	if len(field) > 0 {
		meanMoisture /= float64(len(field))
	}
	log.Printf("terrain: mean final moisture %.3f, 24h drydown tail %.3f",
		meanMoisture, tail(forecast.Drydown(meanMoisture, forecast.DefaultSteps, forecast.DefaultRate)))

	if *withPreview {
		writePreviews(p, field, dir)
	}

	if failed > 0 {
		log.Printf("terrain: %d of %d artifacts failed", failed, len(results))
		os.Exit(1)
	}
}

func writePreviews(p *terrain.Pipeline, field []float64, dir string) {
	if err := preview.SaveElevationHeatmap(p.Grid, filepath.Join(dir, "elevation.png")); err != nil {
		log.Printf("terrain: %v", err)
	}
	if err := preview.SaveMoistureHeatmap(field, p.Grid.Rows, p.Grid.Cols, filepath.Join(dir, "moisture.png")); err != nil {
		log.Printf("terrain: %v", err)
	}
	if err := preview.SaveSurface3D(p.Grid, filepath.Join(dir, "surface.html")); err != nil {
		log.Printf("terrain: %v", err)
	}
}

func tail(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return vals[len(vals)-1]
}
