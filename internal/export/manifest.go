package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Mewyer/innagrika/internal/terrain"
)

// Coord is a world-space coordinate in the consumer convention: X across,
// Y up (elevation), Z depth.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Manifest lists every infrastructure point in world space, in planner
// order. Coordinates use the identical axis remap as the mesh, so each entry
// equals the mesh vertex at the same grid index.
type Manifest struct {
	DrainagePoints   []Coord `json:"drainage_points"`
	IrrigationPoints []Coord `json:"irrigation_points"`
}

// BuildManifest maps the plan's grid coordinates into world space.
func BuildManifest(g *terrain.Grid, plan terrain.Plan) Manifest {
	m := Manifest{
		DrainagePoints:   make([]Coord, 0, len(plan.Drainage)),
		IrrigationPoints: make([]Coord, 0, len(plan.Irrigation)),
	}
	for _, p := range plan.Drainage {
		x, y, z := Vertex(g, p.Row, p.Col)
		m.DrainagePoints = append(m.DrainagePoints, Coord{X: x, Y: y, Z: z})
	}
	for _, p := range plan.Irrigation {
		x, y, z := Vertex(g, p.Row, p.Col)
		m.IrrigationPoints = append(m.IrrigationPoints, Coord{X: x, Y: y, Z: z})
	}
	return m
}

func writeManifestFile(g *terrain.Grid, plan terrain.Plan, path string) error {
	data, err := json.MarshalIndent(BuildManifest(g, plan), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
