package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mewyer/innagrika/internal/terrain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathIsAllDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, terrain.BuilderConfig{Resolution: terrain.DefaultResolution, HeightScale: 1}, cfg.BuilderConfig())
	assert.Equal(t, terrain.DefaultSimConfig(), cfg.SimConfig())
	assert.Equal(t, DefaultSteps, cfg.RunSteps())
	assert.Equal(t, DefaultOutputDir, cfg.RunOutputDir())
}

func TestLoad_PartialFileOverridesOnlyMentioned(t *testing.T) {
	path := writeConfig(t, `{"resolution": 50, "evaporation_rate": 0.005}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.BuilderConfig().Resolution)
	assert.Equal(t, 1.0, cfg.BuilderConfig().HeightScale, "unmentioned field keeps default")

	sim := cfg.SimConfig()
	assert.Equal(t, 0.005, sim.EvaporationRate)
	assert.Equal(t, terrain.DefaultSimConfig().Radius, sim.Radius, "unmentioned field keeps default")
}

func TestLoad_ExplicitZeroSticks(t *testing.T) {
	path := writeConfig(t, `{"steps": 0, "evaporation_rate": 0}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.RunSteps())
	assert.Equal(t, 0.0, cfg.SimConfig().EvaporationRate)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, `{"resolutoin": 50}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	for name, body := range map[string]string{
		"tiny resolution": `{"resolution": 1}`,
		"negative radius": `{"radius": -2}`,
		"negative steps":  `{"steps": -1}`,
		"negative rate":   `{"drainage_rate": -0.5}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
