package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/landcover-cli/internal/buffer"
)

func testFeatures(t *testing.T) []Feature {
	t.Helper()
	center := geom.NewPointFlat(geom.XY, []float64{1000, 2000}).SetSRID(3857)

	var feats []Feature
	for _, radius := range []float64{150, 510, 990} {
		ring, err := buffer.Ring(center, radius, 32)
		require.NoError(t, err)
		feats = append(feats, Feature{Name: "buffer", RadiusM: radius, Poly: ring})
	}
	return feats
}

func TestWriteShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffers.shp")
	require.NoError(t, WriteShapefile(path, testFeatures(t)))

	reader, err := shp.Open(path)
	require.NoError(t, err)
	defer reader.Close() //nolint:errcheck

	n := 0
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		require.True(t, ok, "shape %d is not a polygon", n)
		assert.NotZero(t, poly.NumPoints)
		n++
	}
	assert.Equal(t, 3, n)
}

func TestWriteShapefileNoFeatures(t *testing.T) {
	err := WriteShapefile(filepath.Join(t.TempDir(), "empty.shp"), nil)
	require.Error(t, err)
}

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffers.geojson")
	require.NoError(t, WriteGeoJSON(path, testFeatures(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "Polygon", fc.Features[0].Geometry.Type)
	assert.InDelta(t, 150, fc.Features[0].Properties["radius_m"].(float64), 1e-9)
	assert.Equal(t, "buffer", fc.Features[0].Properties["name"])
}

func TestWriteGeoJSONNoFeatures(t *testing.T) {
	err := WriteGeoJSON(filepath.Join(t.TempDir(), "empty.geojson"), nil)
	require.Error(t, err)
}
