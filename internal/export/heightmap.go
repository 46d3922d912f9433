package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/Mewyer/innagrika/internal/terrain"
)

// writeHeightmap renders the grid as a single-channel 8-bit PNG with the same
// dimensions as the grid, rescaling elevation linearly into [0,255] by the
// grid's own extrema. A degenerate range (min == max) produces a flat
// mid-value image and a warning instead of an error; export never aborts on
// that condition.
func writeHeightmap(g *terrain.Grid, path string) (warning string, err error) {
	min, max := g.MinMax()
	span := max - min

	img := image.NewGray(image.Rect(0, 0, g.Cols, g.Rows))
	if span == 0 {
		warning = WarnDegenerateRange
		for i := range img.Pix {
			img.Pix[i] = 128
		}
	} else {
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				v := (g.At(r, c) - min) / span
				img.SetGray(c, r, color.Gray{Y: uint8(math.Round(v * 255))})
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return warning, fmt.Errorf("create heightmap: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return warning, fmt.Errorf("encode heightmap: %w", err)
	}
	return warning, nil
}
