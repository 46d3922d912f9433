package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Mewyer/innagrika/internal/terrain"
)

// Artifact file names under the output directory.
const (
	HeightmapFile = "heightmap.png"
	MeshFile      = "terrain.obj"
	ManifestFile  = "infrastructure.json"
)

// WarnDegenerateRange is the warning surfaced when the grid's min and max
// elevation coincide and the heightmap falls back to a flat mid-value image.
const WarnDegenerateRange = "degenerate elevation range: flat mid-value heightmap"

// Result reports the outcome of one artifact write. Err is set when that
// artifact failed; sibling artifacts are unaffected. Warning carries locally
// recovered conditions that must not be swallowed.
type Result struct {
	Artifact string
	Path     string
	Err      error
	Warning  string
}

// Write emits all artifacts for the run into dir, creating it if missing.
// An I/O failure on one artifact aborts only that artifact; the others are
// still attempted and already-written files are never retracted. The caller
// receives one Result per artifact, in a fixed order.
func Write(g *terrain.Grid, plan terrain.Plan, dir string) []Result {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		err = fmt.Errorf("create output dir: %w", err)
		return []Result{
			{Artifact: "heightmap", Err: err},
			{Artifact: "mesh", Err: err},
			{Artifact: "manifest", Err: err},
		}
	}

	results := make([]Result, 0, 3)

	hm := Result{Artifact: "heightmap", Path: filepath.Join(dir, HeightmapFile)}
	hm.Warning, hm.Err = writeHeightmap(g, hm.Path)
	results = append(results, hm)

	mesh := Result{Artifact: "mesh", Path: filepath.Join(dir, MeshFile)}
	mesh.Err = writeMeshFile(g, mesh.Path)
	results = append(results, mesh)

	man := Result{Artifact: "manifest", Path: filepath.Join(dir, ManifestFile)}
	man.Err = writeManifestFile(g, plan, man.Path)
	results = append(results, man)

	for _, r := range results {
		switch {
		case r.Err != nil:
			log.Printf("export: %s failed: %v", r.Artifact, r.Err)
		case r.Warning != "":
			log.Printf("export: %s written to %s (warning: %s)", r.Artifact, r.Path, r.Warning)
		default:
			log.Printf("export: %s written to %s", r.Artifact, r.Path)
		}
	}
	return results
}

// Vertex is the shared axis remap: grid cell (row, col) to consumer mesh
// space, X = world X, Y (up) = elevation, Z (depth) = world depth axis. Both
// the mesh writer and the manifest use this and nothing else, which is what
// keeps them aligned.
func Vertex(g *terrain.Grid, row, col int) (x, y, z float64) {
	wx, wy := g.World(row, col)
	return wx, g.At(row, col), wy
}
