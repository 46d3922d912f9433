package export

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Mewyer/innagrika/internal/terrain"
)

func TestWrite_AllArtifacts(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0.0, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 1.0},
	})
	plan := terrain.PlanInfrastructure(g)
	// Missing directories are created, not an error.
	dir := filepath.Join(t.TempDir(), "nested", "out")

	results := Write(g, plan, dir)
	require.Len(t, results, 3)
	for _, r := range results {
		require.NoError(t, r.Err, "artifact %s", r.Artifact)
		require.Empty(t, r.Warning, "artifact %s", r.Artifact)
		if _, err := os.Stat(r.Path); err != nil {
			t.Errorf("artifact %s missing: %v", r.Artifact, err)
		}
	}
}

func TestWrite_HeightmapPixels(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0.0, 0.5},
		{0.5, 1.0},
	})
	dir := t.TempDir()
	results := Write(g, terrain.Plan{}, dir)
	require.NoError(t, results[0].Err)

	f, err := os.Open(results[0].Path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	gray, ok := img.(*image.Gray)
	require.True(t, ok, "heightmap must decode as 8-bit grayscale, got %T", img)
	require.Equal(t, image.Rect(0, 0, 2, 2), gray.Bounds())
	require.EqualValues(t, 0, gray.GrayAt(0, 0).Y, "minimum elevation maps to 0")
	require.EqualValues(t, 255, gray.GrayAt(1, 1).Y, "maximum elevation maps to 255")
}

// A uniform 4x4 grid triggers the degenerate-range fallback: a flat
// mid-value image with a surfaced warning, never a failure.
func TestWrite_DegenerateRangeFallback(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
	})
	dir := t.TempDir()
	results := Write(g, terrain.Plan{}, dir)

	hm := results[0]
	require.NoError(t, hm.Err, "degenerate range must not abort the heightmap")
	require.Equal(t, WarnDegenerateRange, hm.Warning)

	f, err := os.Open(hm.Path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	gray := img.(*image.Gray)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.EqualValues(t, 128, gray.GrayAt(x, y).Y, "pixel (%d,%d)", x, y)
		}
	}
}

// One artifact failing leaves the siblings written; partial success is
// reported per artifact and nothing is retracted.
func TestWrite_PartialFailure(t *testing.T) {
	g := buildTestGrid(t, [][]float64{{1, 2}, {3, 4}})
	dir := t.TempDir()
	// Occupy the heightmap path with a directory so its create fails.
	require.NoError(t, os.Mkdir(filepath.Join(dir, HeightmapFile), 0o755))

	results := Write(g, terrain.Plan{}, dir)
	require.Error(t, results[0].Err, "heightmap should have failed")
	require.NoError(t, results[1].Err, "mesh should still be written")
	require.NoError(t, results[2].Err, "manifest should still be written")

	for _, r := range results[1:] {
		_, err := os.Stat(r.Path)
		require.NoError(t, err, "artifact %s", r.Artifact)
	}
}

func TestManifestJSONShape(t *testing.T) {
	g := buildTestGrid(t, [][]float64{
		{0.0, 0.5, 0.5},
		{0.5, 0.5, 0.5},
		{0.5, 0.5, 1.0},
	})
	plan := terrain.PlanInfrastructure(g)
	dir := t.TempDir()
	results := Write(g, plan, dir)
	require.NoError(t, results[2].Err)

	data, err := os.ReadFile(results[2].Path)
	require.NoError(t, err)
	var decoded Manifest
	require.NoError(t, json.Unmarshal(data, &decoded))

	if diff := cmp.Diff(BuildManifest(g, plan), decoded); diff != "" {
		t.Errorf("manifest round-trip mismatch:\n%s", diff)
	}
	// Ordered lists under the documented keys.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "drainage_points")
	require.Contains(t, raw, "irrigation_points")
}
