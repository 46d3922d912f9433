package preview

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Mewyer/innagrika/internal/terrain"
)

// terrainColors is a viridis-like ramp from wet lowland to dry ridge.
var terrainColors = []string{
	"#313695", "#4575b4", "#74add1", "#abd9e9", "#e0f3f8",
	"#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026",
}

// SaveSurface3D writes a standalone HTML page with an interactive 3D surface
// of the terrain grid. Point order is (x, depth, elevation) so the chart's
// vertical axis matches the mesh's up axis.
func SaveSurface3D(g *terrain.Grid, path string) error {
	min, max := g.MinMax()

	data := make([]opts.Chart3DData, 0, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			x, y := g.World(r, c)
			data = append(data, opts.Chart3DData{Value: []interface{}{x, y, g.At(r, c)}})
		}
	}

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Terrain surface", Width: "1100px", Height: "800px"}),
		charts.WithTitleOpts(opts.Title{Title: "Terrain surface", Subtitle: fmt.Sprintf("%dx%d grid", g.Rows, g.Cols)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: terrainColors},
		}),
	)
	surface.AddSeries("elevation", data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create surface page: %w", err)
	}
	defer f.Close()
	if err := surface.Render(f); err != nil {
		return fmt.Errorf("preview: render surface: %w", err)
	}
	return nil
}
