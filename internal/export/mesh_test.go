package export

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/Mewyer/innagrika/internal/terrain"
)

type objMesh struct {
	verts [][3]float64
	uvs   [][2]float64
	faces [][3]int // 1-based vertex indices
}

func parseOBJ(t *testing.T, r *bytes.Buffer) objMesh {
	t.Helper()
	var m objMesh
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			var v [3]float64
			for i := 0; i < 3; i++ {
				fmt.Sscanf(fields[i+1], "%f", &v[i])
			}
			m.verts = append(m.verts, v)
		case "vt":
			var uv [2]float64
			for i := 0; i < 2; i++ {
				fmt.Sscanf(fields[i+1], "%f", &uv[i])
			}
			m.uvs = append(m.uvs, uv)
		case "f":
			var f [3]int
			for i := 0; i < 3; i++ {
				idx := strings.SplitN(fields[i+1], "/", 2)
				fmt.Sscanf(idx[0], "%d", &f[i])
				if len(idx) == 2 && idx[1] != idx[0] {
					t.Fatalf("face %v: UV index differs from vertex index", fields)
				}
			}
			m.faces = append(m.faces, f)
		default:
			t.Fatalf("unexpected OBJ line: %q", sc.Text())
		}
	}
	return m
}

func buildTestGrid(t *testing.T, m [][]float64) *terrain.Grid {
	t.Helper()
	g, err := terrain.BuildGrid(&terrain.Input{Kind: terrain.MatrixInput, Matrix: m}, terrain.BuilderConfig{})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	return g
}

func TestWriteMesh_Counts(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0, 1, 2},
		{1, 2, 3},
		{2, 3, 4},
	})
	var buf bytes.Buffer
	if err := WriteMesh(g, &buf); err != nil {
		t.Fatalf("WriteMesh: %v", err)
	}
	m := parseOBJ(t, &buf)

	if len(m.verts) != 9 {
		t.Errorf("vertices = %d, want 9", len(m.verts))
	}
	if len(m.uvs) != 9 {
		t.Errorf("uvs = %d, want 9", len(m.uvs))
	}
	// Two triangles per interior unit cell: 2*2 quads.
	if len(m.faces) != 8 {
		t.Errorf("faces = %d, want 8", len(m.faces))
	}
	for _, f := range m.faces {
		for _, idx := range f {
			if idx < 1 || idx > len(m.verts) {
				t.Fatalf("face index %d out of 1-based range [1,%d]", idx, len(m.verts))
			}
		}
	}
}

func TestWriteMesh_AxisRemapAndUVs(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{10, 20},
		{30, 40},
	})
	var buf bytes.Buffer
	if err := WriteMesh(g, &buf); err != nil {
		t.Fatalf("WriteMesh: %v", err)
	}
	m := parseOBJ(t, &buf)

	// Vertex (row 1, col 0): X = world col, Y = elevation, Z = world row.
	want := [3]float64{0, 30, 1}
	if m.verts[2] != want {
		t.Errorf("vertex(1,0) = %v, want %v", m.verts[2], want)
	}
	if m.uvs[0] != [2]float64{0, 0} {
		t.Errorf("uv(0,0) = %v, want (0,0)", m.uvs[0])
	}
	if m.uvs[3] != [2]float64{1, 1} {
		t.Errorf("uv(1,1) = %v, want (1,1)", m.uvs[3])
	}
}

// Every face normal must point toward +Y (the up axis), across the whole
// mesh, for any terrain.
func TestWriteMesh_ConsistentUpwardWinding(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0.0, 0.9, 0.1, 0.7},
		{0.8, 0.2, 0.6, 0.3},
		{0.4, 1.0, 0.0, 0.5},
		{0.9, 0.1, 0.8, 0.2},
	})
	var buf bytes.Buffer
	if err := WriteMesh(g, &buf); err != nil {
		t.Fatalf("WriteMesh: %v", err)
	}
	m := parseOBJ(t, &buf)

	for i, f := range m.faces {
		a, b, c := m.verts[f[0]-1], m.verts[f[1]-1], m.verts[f[2]-1]
		e1 := [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		ny := e1[2]*e2[0] - e1[0]*e2[2] // Y component of e1 x e2
		if ny <= 0 {
			t.Errorf("face %d (%v): normal Y = %v, want > 0", i, f, ny)
		}
	}
}

func TestWriteMesh_DegenerateGridIsFlat(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
	})
	var buf bytes.Buffer
	if err := WriteMesh(g, &buf); err != nil {
		t.Fatalf("WriteMesh: %v", err)
	}
	m := parseOBJ(t, &buf)
	for i, v := range m.verts {
		if v[1] != 0.5 {
			t.Errorf("vertex %d elevation = %v, want 0.5", i, v[1])
		}
	}
}

// Manifest coordinates must match the mesh vertex at the same grid index
// within 1e-6: both go through the one shared axis remap.
func TestManifestMatchesMeshVertices(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0.0, 0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5, 1.0},
	})
	plan := terrain.PlanInfrastructure(g)
	if len(plan.Drainage) == 0 || len(plan.Irrigation) == 0 {
		t.Fatalf("planner placed %d/%d points, need both kinds", len(plan.Drainage), len(plan.Irrigation))
	}

	var buf bytes.Buffer
	if err := WriteMesh(g, &buf); err != nil {
		t.Fatalf("WriteMesh: %v", err)
	}
	mesh := parseOBJ(t, &buf)
	manifest := BuildManifest(g, plan)

	check := func(points []terrain.Point, coords []Coord) {
		for i, p := range points {
			v := mesh.verts[p.Row*g.Cols+p.Col]
			got := coords[i]
			if math.Abs(got.X-v[0]) > 1e-6 || math.Abs(got.Y-v[1]) > 1e-6 || math.Abs(got.Z-v[2]) > 1e-6 {
				t.Errorf("point %+v: manifest %v, mesh vertex %v", p, got, v)
			}
		}
	}
	check(plan.Drainage, manifest.DrainagePoints)
	check(plan.Irrigation, manifest.IrrigationPoints)
}
