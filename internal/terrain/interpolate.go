package terrain

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// cubicRBF is a smooth scattered-data interpolant built from cubic radial
// basis functions (phi(r) = r^3) with an affine polynomial term:
//
//	s(x,y) = sum_i w_i * |p - p_i|^3 + c0 + c1*x + c2*y
//
// The augmented system is solved once at construction with gonum. Evaluation
// is defined only inside the convex hull of the sample locations; callers
// must gate eval with hull.contains.
type cubicRBF struct {
	xs, ys  []float64
	weights []float64 // len(xs) RBF weights followed by c0, c1, c2
	hull    convexHull
}

// newCubicRBF deduplicates coincident sample locations (averaging their z),
// validates that the samples can define a surface, and solves for the
// interpolation weights.
func newCubicRBF(points []Sample) (*cubicRBF, error) {
	xs, ys, zs := dedupeSamples(points)
	n := len(xs)
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 distinct sample locations, have %d", ErrUnsupportedFormat, n)
	}

	hull := buildHull(xs, ys)
	if len(hull.hx) < 3 {
		return nil, fmt.Errorf("%w: sample locations are collinear", ErrUnsupportedFormat)
	}

	// Augmented symmetric system: [A P; P^T 0] [w; c] = [z; 0].
	dim := n + 3
	a := mat.NewDense(dim, dim, nil)
	b := mat.NewVecDense(dim, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := math.Hypot(xs[i]-xs[j], ys[i]-ys[j])
			a.Set(i, j, r*r*r)
		}
		a.Set(i, n, 1)
		a.Set(i, n+1, xs[i])
		a.Set(i, n+2, ys[i])
		a.Set(n, i, 1)
		a.Set(n+1, i, xs[i])
		a.Set(n+2, i, ys[i])
		b.SetVec(i, zs[i])
	}

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%w: interpolation system is singular", ErrUnsupportedFormat)
	}

	return &cubicRBF{xs: xs, ys: ys, weights: w.RawVector().Data, hull: hull}, nil
}

func (f *cubicRBF) eval(x, y float64) float64 {
	n := len(f.xs)
	s := f.weights[n] + f.weights[n+1]*x + f.weights[n+2]*y
	for i := 0; i < n; i++ {
		r := math.Hypot(x-f.xs[i], y-f.ys[i])
		s += f.weights[i] * r * r * r
	}
	return s
}

// dedupeSamples merges samples at identical (x, y) locations, averaging z, so
// permitted duplicate measurements cannot make the RBF system singular.
// Output order is deterministic (sorted by x then y).
func dedupeSamples(points []Sample) (xs, ys, zs []float64) {
	type acc struct {
		sum float64
		n   int
	}
	type key struct{ x, y float64 }
	merged := make(map[key]*acc, len(points))
	for _, p := range points {
		k := key{p.X, p.Y}
		if a, ok := merged[k]; ok {
			a.sum += p.Z
			a.n++
		} else {
			merged[k] = &acc{sum: p.Z, n: 1}
		}
	}
	keys := make([]key, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].x != keys[j].x {
			return keys[i].x < keys[j].x
		}
		return keys[i].y < keys[j].y
	})
	xs = make([]float64, len(keys))
	ys = make([]float64, len(keys))
	zs = make([]float64, len(keys))
	for i, k := range keys {
		a := merged[k]
		xs[i], ys[i], zs[i] = k.x, k.y, a.sum/float64(a.n)
	}
	return xs, ys, zs
}

// convexHull is a counter-clockwise hull polygon used to decide where the
// scattered interpolant is defined.
type convexHull struct {
	hx, hy []float64
	eps    float64 // boundary tolerance scaled to the hull extent
}

// buildHull computes the convex hull of the (already deduplicated, sorted)
// locations with Andrew's monotone chain. Collinear input yields a hull with
// fewer than 3 vertices.
func buildHull(xs, ys []float64) convexHull {
	n := len(xs)
	type pt struct{ x, y float64 }
	pts := make([]pt, n)
	for i := range xs {
		pts[i] = pt{xs[i], ys[i]}
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].x != pts[j].x {
			return pts[i].x < pts[j].x
		}
		return pts[i].y < pts[j].y
	})

	cross := func(o, a, b pt) float64 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}

	var h []pt
	for _, p := range pts { // lower chain
		for len(h) >= 2 && cross(h[len(h)-2], h[len(h)-1], p) <= 0 {
			h = h[:len(h)-1]
		}
		h = append(h, p)
	}
	lower := len(h) + 1
	for i := n - 2; i >= 0; i-- { // upper chain
		p := pts[i]
		for len(h) >= lower && cross(h[len(h)-2], h[len(h)-1], p) <= 0 {
			h = h[:len(h)-1]
		}
		h = append(h, p)
	}
	h = h[:len(h)-1] // last point repeats the first

	hull := convexHull{
		hx: make([]float64, len(h)),
		hy: make([]float64, len(h)),
	}
	var scale float64
	for i, p := range h {
		hull.hx[i] = p.x
		hull.hy[i] = p.y
		scale = math.Max(scale, math.Max(math.Abs(p.x), math.Abs(p.y)))
	}
	hull.eps = 1e-9 * (scale + 1)
	return hull
}

// contains reports whether (x, y) lies inside or on the hull boundary.
func (h convexHull) contains(x, y float64) bool {
	n := len(h.hx)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		// Point must be on the left of every CCW edge.
		c := (h.hx[j]-h.hx[i])*(y-h.hy[i]) - (h.hy[j]-h.hy[i])*(x-h.hx[i])
		if c < -h.eps {
			return false
		}
	}
	return true
}
