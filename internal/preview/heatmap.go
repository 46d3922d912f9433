// Package preview renders human-inspection views of the terrain grid and the
// moisture field. It is strictly read-only over core data and nothing here
// feeds back into the pipeline.
package preview

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Mewyer/innagrika/internal/terrain"
)

// fieldXYZ adapts a row-major scalar field to plotter.GridXYZ. Row 0 is
// drawn at the bottom, matching the world depth axis.
type fieldXYZ struct {
	rows, cols int
	data       []float64
}

func (f fieldXYZ) Dims() (c, r int)   { return f.cols, f.rows }
func (f fieldXYZ) X(c int) float64    { return float64(c) }
func (f fieldXYZ) Y(r int) float64    { return float64(r) }
func (f fieldXYZ) Z(c, r int) float64 { return f.data[r*f.cols+c] }

// SaveHeatmap writes a PNG heatmap of an arbitrary row-major scalar field.
func SaveHeatmap(data []float64, rows, cols int, title, path string) error {
	if len(data) != rows*cols {
		return fmt.Errorf("preview: field has %d values, want %d", len(data), rows*cols)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"

	hm := plotter.NewHeatMap(fieldXYZ{rows: rows, cols: cols, data: data}, palette.Heat(16, 1))
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("preview: save heatmap: %w", err)
	}
	return nil
}

// SaveElevationHeatmap renders the terrain grid's elevations.
func SaveElevationHeatmap(g *terrain.Grid, path string) error {
	return SaveHeatmap(g.Elev, g.Rows, g.Cols, "Terrain elevation", path)
}

// SaveMoistureHeatmap renders a moisture-field snapshot copied out of the
// simulator.
func SaveMoistureHeatmap(field []float64, rows, cols int, path string) error {
	return SaveHeatmap(field, rows, cols, "Soil moisture", path)
}
