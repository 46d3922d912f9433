package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Mewyer/innagrika/internal/terrain"
)

// WriteMesh emits the grid surface as Wavefront OBJ text: one v line per
// cell, one vt line per cell, and two f lines per interior quad with 1-based
// indices.
//
// Vertices follow the consumer coordinate convention from Vertex (elevation
// up). UVs are (col/(cols-1), row/(rows-1)). Each quad splits along the same
// diagonal with one fixed winding, counter-clockwise seen from above, so
// every face normal points toward +Y.
func WriteMesh(g *terrain.Grid, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			x, y, z := Vertex(g, r, c)
			if _, err := fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", x, y, z); err != nil {
				return err
			}
		}
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if _, err := fmt.Fprintf(bw, "vt %.6f %.6f\n", uvCoord(c, g.Cols), uvCoord(r, g.Rows)); err != nil {
				return err
			}
		}
	}

	for r := 0; r < g.Rows-1; r++ {
		for c := 0; c < g.Cols-1; c++ {
			// 1-based corner indices of the quad at (r, c).
			v1 := r*g.Cols + c + 1      // (r, c)
			v2 := v1 + 1                // (r, c+1)
			v3 := v1 + g.Cols           // (r+1, c)
			v4 := v3 + 1                // (r+1, c+1)
			if _, err := fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\nf %d/%d %d/%d %d/%d\n",
				v1, v1, v3, v3, v2, v2, v2, v2, v3, v3, v4, v4); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func uvCoord(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func writeMeshFile(g *terrain.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mesh: %w", err)
	}
	defer f.Close()
	if err := WriteMesh(g, f); err != nil {
		return fmt.Errorf("write mesh: %w", err)
	}
	return nil
}
