package legend

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	p := Default()
	require.Len(t, p, 9)

	labels := make([]string, 0, len(p))
	for _, e := range p {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{
		"water", "barren", "developed", "grassland", "wetland",
		"non_flowering_crop", "flowering_crop", "canola", "forest",
	}, labels)
	assert.Len(t, p.Visible(), 9)
}

func TestReclassifiedPalette(t *testing.T) {
	p := Reclassified()
	require.Len(t, p, 8)

	// Absorbed classes are gone.
	_, ok := p.Color(1)
	assert.False(t, ok)
	_, ok = p.Color(6)
	assert.False(t, ok)

	// Sentinel present, blank label, neutral color.
	c, ok := p.Color(HiddenCode)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff}, c)
	assert.Equal(t, "", p.Label(HiddenCode))
	assert.Len(t, p.Visible(), 7)
}

func TestReclassifyCustomAbsorbed(t *testing.T) {
	p := Default().Reclassify(9)
	require.Len(t, p, 9)
	_, ok := p.Color(9)
	assert.False(t, ok)
	_, ok = p.Color(1)
	assert.True(t, ok)
}

func TestColorAndLabelLookup(t *testing.T) {
	p := Default()

	c, ok := p.Color(8)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}, c)
	assert.Equal(t, "canola", p.Label(8))

	_, ok = p.Color(42)
	assert.False(t, ok)
	assert.Equal(t, "", p.Label(42))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	doc := `entries:
  - code: 1
    label: open_water
    color: "#0000ff"
  - code: 10
    color: "#cccccc"
    hidden: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, p, 2)

	assert.Equal(t, "open_water", p.Label(1))
	c, ok := p.Color(1)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, c)
	assert.True(t, p[1].Hidden)
	assert.Len(t, p.Visible(), 1)
}

func TestLoadFileInvalidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	doc := "entries:\n  - code: 1\n    label: water\n    color: blue\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid color")
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entries")
}
