package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []float64{150, 510, 990, 2000, 5000}, cfg.Pipeline.RadiiM)
	assert.InDelta(t, 1.35, cfg.Pipeline.PadFactor, 1e-9)
	assert.Equal(t, 64, cfg.Pipeline.Segments)
	assert.Equal(t, 4326, cfg.Pipeline.SourceEPSG)
	assert.Equal(t, 3857, cfg.Pipeline.WorkingEPSG)
	assert.InDelta(t, 2000, cfg.Pipeline.CropRadiusM, 1e-9)
	assert.Equal(t, 3857, cfg.Raster.EPSG)
	assert.Equal(t, 4, cfg.Render.CellPx)
	assert.Equal(t, "", cfg.Render.Out)
	assert.Equal(t, "landcover.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	doc := `
pipeline:
  pad_factor: 1.5
  radii_m: [100, 200]
render:
  out: figure.png
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(doc), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 1.5, cfg.Pipeline.PadFactor, 1e-9)
	assert.Equal(t, []float64{100, 200}, cfg.Pipeline.RadiiM)
	assert.Equal(t, "figure.png", cfg.Render.Out)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 64, cfg.Pipeline.Segments)
}

func TestSubstitutions(t *testing.T) {
	c := RasterConfig{Reclass: map[string]int{"1": 10, "6": 10}}
	assert.Equal(t, map[uint8]uint8{1: 10, 6: 10}, c.Substitutions())
}

func TestSubstitutionsSkipsInvalid(t *testing.T) {
	c := RasterConfig{Reclass: map[string]int{"water": 10, "300": 10, "2": 999, "3": 10}}
	assert.Equal(t, map[uint8]uint8{3: 10}, c.Substitutions())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shout", Format: "json"})
	require.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
