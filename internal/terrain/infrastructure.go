package terrain

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PointKind tags an infrastructure point as drainage or irrigation.
type PointKind int

const (
	Drainage PointKind = iota
	Irrigation
)

func (k PointKind) String() string {
	if k == Drainage {
		return "drainage"
	}
	return "irrigation"
}

// Point is an integer grid coordinate tagged with its infrastructure role.
type Point struct {
	Col, Row int
	Kind     PointKind
}

// Plan holds the two disjoint, ordered infrastructure point sets. Consumers
// receive copies (Clone) and never alias planner-internal storage.
type Plan struct {
	Drainage   []Point
	Irrigation []Point
}

// Clone returns a deep copy of the plan so downstream components consume the
// point sets by value.
func (p Plan) Clone() Plan {
	return Plan{
		Drainage:   append([]Point(nil), p.Drainage...),
		Irrigation: append([]Point(nil), p.Irrigation...),
	}
}

// Percentile thresholds and the stride divisor of the placement heuristic.
const (
	drainagePercentile   = 0.15
	irrigationPercentile = 0.85
	strideDivisor        = 20
)

// PlanInfrastructure scans the grid on a fixed stride and emits drainage
// points where elevation falls below the 15th percentile and irrigation
// points where it rises above the 85th, both computed over the full flattened
// elevation array with the linear-interpolation percentile method.
//
// The stride is max(1, dimension/20) per axis, bounding the visited cells to
// roughly 20x20 regardless of resolution. The row-major stride-order output
// is deterministic but carries no simulation meaning. No randomness.
func PlanInfrastructure(g *Grid) Plan {
	sorted := append([]float64(nil), g.Elev...)
	sort.Float64s(sorted)
	lo := stat.Quantile(drainagePercentile, stat.LinInterp, sorted, nil)
	hi := stat.Quantile(irrigationPercentile, stat.LinInterp, sorted, nil)

	rowStride := g.Rows / strideDivisor
	if rowStride < 1 {
		rowStride = 1
	}
	colStride := g.Cols / strideDivisor
	if colStride < 1 {
		colStride = 1
	}

	var plan Plan
	for r := 0; r < g.Rows; r += rowStride {
		for c := 0; c < g.Cols; c += colStride {
			switch v := g.At(r, c); {
			case v < lo:
				plan.Drainage = append(plan.Drainage, Point{Col: c, Row: r, Kind: Drainage})
			case v > hi:
				plan.Irrigation = append(plan.Irrigation, Point{Col: c, Row: r, Kind: Irrigation})
			}
		}
	}
	return plan
}
