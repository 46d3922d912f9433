package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mewyer/innagrika/internal/terrain"
)

func testGrid(t *testing.T) *terrain.Grid {
	t.Helper()
	g, err := terrain.BuildGrid(&terrain.Input{
		Kind:   terrain.MatrixInput,
		Matrix: [][]float64{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}},
	}, terrain.BuilderConfig{})
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	return g
}

func TestSaveElevationHeatmap(t *testing.T) {
	g := testGrid(t)
	path := filepath.Join(t.TempDir(), "elevation.png")

	if err := SaveElevationHeatmap(g, path); err != nil {
		t.Fatalf("SaveElevationHeatmap: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read heatmap: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("heatmap file is not a PNG, starts with %q", data[:min(4, len(data))])
	}
}

func TestSaveHeatmap_LengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := SaveHeatmap([]float64{1, 2, 3}, 2, 2, "bad", path); err == nil {
		t.Fatal("expected error for short field, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file should not be created on length mismatch")
	}
}

func TestSaveSurface3D(t *testing.T) {
	g := testGrid(t)
	path := filepath.Join(t.TempDir(), "surface.html")

	if err := SaveSurface3D(g, path); err != nil {
		t.Fatalf("SaveSurface3D: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read surface page: %v", err)
	}
	if !bytes.Contains(data, []byte("<html")) {
		t.Errorf("surface page does not look like HTML")
	}
	if !bytes.Contains(data, []byte("echarts")) {
		t.Errorf("surface page does not reference echarts")
	}
}
