package terrain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Grid is the uniform terrain model every downstream component reads.
// Elev, WorldX and WorldY are row-major (index row*Cols+col) and always share
// the same shape. WorldX carries the world X coordinate of each cell and
// WorldY the world depth-axis coordinate. A Grid returned by BuildGrid
// contains no NaN and is never mutated afterwards; all consumers treat it as
// read-only.
type Grid struct {
	Rows, Cols int
	Elev       []float64
	WorldX     []float64
	WorldY     []float64
}

// At returns the elevation at (row, col).
func (g *Grid) At(row, col int) float64 { return g.Elev[row*g.Cols+col] }

// World returns the world (x, depth) coordinate of cell (row, col).
func (g *Grid) World(row, col int) (x, y float64) {
	i := row*g.Cols + col
	return g.WorldX[i], g.WorldY[i]
}

// MinMax returns the elevation extrema of the grid.
func (g *Grid) MinMax() (min, max float64) {
	return floats.Min(g.Elev), floats.Max(g.Elev)
}

// BuilderConfig controls grid construction.
type BuilderConfig struct {
	// Resolution is the target grid edge length for the scattered path
	// (the output is Resolution x Resolution). Ignored on the matrix path.
	Resolution int

	// HeightScale multiplies matrix elevations, remedying inputs
	// normalized to [0,1]. Zero means 1 (no scaling). Ignored on the
	// scattered path.
	HeightScale float64
}

// DefaultResolution is the scattered-path grid edge length when the config
// leaves Resolution unset.
const DefaultResolution = 100

// BuildGrid unifies either input shape into a Grid. It is a pure function:
// the input is not mutated and the returned grid shares no storage with it.
//
// Matrix path: the matrix shape becomes the grid shape directly with no
// resampling, and world coordinates are integer meshgrids aligned one-to-one
// with matrix indices.
//
// Scattered path: an axis-aligned extent is computed from the sample x/y
// bounds, a Resolution x Resolution grid spans it, and elevations are
// interpolated with a smooth cubic radial-basis method. Nodes outside the
// convex hull of the samples are filled with the mean of the successfully
// interpolated nodes.
func BuildGrid(in *Input, cfg BuilderConfig) (*Grid, error) {
	if in == nil {
		return nil, ErrEmptyInput
	}
	switch in.Kind {
	case MatrixInput:
		return buildFromMatrix(in.Matrix, cfg)
	case PointCloudInput:
		return buildFromPoints(in.Points, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown input kind %d", ErrUnsupportedFormat, int(in.Kind))
	}
}

func buildFromMatrix(m [][]float64, cfg BuilderConfig) (*Grid, error) {
	rows := len(m)
	if rows == 0 {
		return nil, ErrEmptyInput
	}
	cols := len(m[0])
	if cols == 0 {
		return nil, ErrEmptyInput
	}
	for i, row := range m {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrUnsupportedFormat, i, len(row), cols)
		}
	}

	scale := cfg.HeightScale
	if scale == 0 {
		scale = 1
	}

	g := newGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			g.Elev[i] = m[r][c] * scale
			g.WorldX[i] = float64(c)
			g.WorldY[i] = float64(r)
		}
	}
	return g, nil
}

func buildFromPoints(points []Sample, cfg BuilderConfig) (*Grid, error) {
	if len(points) == 0 {
		return nil, ErrEmptyInput
	}
	res := cfg.Resolution
	if res <= 0 {
		res = DefaultResolution
	}

	interp, err := newCubicRBF(points)
	if err != nil {
		return nil, err
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	g := newGrid(res, res)
	inside := make([]bool, res*res)
	var sum float64
	var n int
	for r := 0; r < res; r++ {
		y := linspaceAt(minY, maxY, res, r)
		for c := 0; c < res; c++ {
			x := linspaceAt(minX, maxX, res, c)
			i := r*res + c
			g.WorldX[i] = x
			g.WorldY[i] = y
			if !interp.hull.contains(x, y) {
				continue
			}
			v := interp.eval(x, y)
			g.Elev[i] = v
			inside[i] = true
			sum += v
			n++
		}
	}
	if n == 0 {
		// Distinct but collinear samples: nothing interpolates, and the
		// gap-fill mean is defined only over interpolated nodes.
		return nil, fmt.Errorf("%w: samples define no interpolation area", ErrUnsupportedFormat)
	}

	fill := sum / float64(n)
	for i := range g.Elev {
		if !inside[i] {
			g.Elev[i] = fill
		}
	}
	return g, nil
}

func newGrid(rows, cols int) *Grid {
	return &Grid{
		Rows:   rows,
		Cols:   cols,
		Elev:   make([]float64, rows*cols),
		WorldX: make([]float64, rows*cols),
		WorldY: make([]float64, rows*cols),
	}
}

// linspaceAt returns the i-th of n evenly spaced values spanning [lo, hi]
// inclusive. A single-node axis collapses to lo.
func linspaceAt(lo, hi float64, n, i int) float64 {
	if n <= 1 {
		return lo
	}
	return lo + (hi-lo)*float64(i)/float64(n-1)
}
